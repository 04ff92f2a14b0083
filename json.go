package boxfmt

import (
	"context"

	"github.com/cockroachdb/cockroachdb-parser/pkg/util/json"
	"github.com/pkg/errors"

	"github.com/mjibson/boxfmt/pretty"
)

// FmtJSON formats the JSON document s. Object keys come out sorted.
func FmtJSON(opts Options, s string) (string, error) {
	d, err := JSONDoc(s)
	if err != nil {
		return "", err
	}
	return pretty.PrettyString(context.Background(), d, opts.config())
}

// JSONDoc parses s into a layout document.
func JSONDoc(s string) (pretty.Doc, error) {
	j, err := json.ParseJSON(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse json")
	}
	return fmtJSONNode(j), nil
}

func fmtJSONNode(j json.JSON) pretty.Doc {
	// Figure out what type this is.
	if it, _ := j.ObjectIter(); it != nil {
		// Object.
		elems := make([]pretty.Doc, 0, j.Len())
		for it.Next() {
			elems = append(elems, pretty.NestUnder(
				pretty.Text(json.FromString(it.Key()).String()+":"),
				fmtJSONNode(it.Value()),
			))
		}
		return prettyBracket("{", elems, "}")
	} else if n := j.Len(); n > 0 {
		// Non-empty array.
		elems := make([]pretty.Doc, n)
		for i := 0; i < n; i++ {
			elem, err := j.FetchValIdx(i)
			if err != nil {
				return pretty.Text(j.String())
			}
			elems[i] = fmtJSONNode(elem)
		}
		return prettyBracket("[", elems, "]")
	}
	// Other.
	return pretty.Text(j.String())
}

func prettyBracket(l string, elems []pretty.Doc, r string) pretty.Doc {
	if len(elems) == 0 {
		return pretty.Text(l + r)
	}
	return pretty.Bracket(l, pretty.Join(",", elems...), r)
}
