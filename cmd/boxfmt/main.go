package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/google/renameio"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/mjibson/boxfmt"
)

type Specification struct {
	Addr      string
	Redir     string
	Autocert  []string
	DirCache  string
	CacheSize int `default:"10000"`
}

const defaultWidth = 80

var (
	flagExpanded      = flag.Bool("expanded", false, "put every element of a broken list on its own line")
	flagPrintWidth    = flag.Int("print-width", 0, "line length where boxfmt will try to wrap, 0 for the terminal width")
	flagUseSpaces     = flag.Bool("use-spaces", false, "indent with spaces instead of tabs")
	flagTabWidth      = flag.Int("tab-width", 4, "number of spaces per indentation level")
	flagLang          = flag.String("lang", "sql", "input language: sql, json or yaml")
	flagCase          = flag.String("case", "upper", "keyword case: upper, lower, title or spongebob")
	flagColor         = flag.Bool("color", false, "highlight keywords with terminal colors")
	flagMaxBlankLines = flag.Int("max-blank-lines", 1, "longest run of blank lines kept between statements")
	flagWrapComments  = flag.Int("wrap-comments", 0, "re-wrap comments to this width, 0 to leave them alone")
	flagStmts         = flag.StringArray("stmt", nil, "instead of reading from stdin, specify statements as arguments")
	flagWrite         = flag.BoolP("write", "w", false, "write result to the named files instead of stdout")
	flagHelp          = flag.BoolP("help", "h", false, "display help")
	flagVersion       = flag.BoolP("version", "v", false, "display version")
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	flag.Parse()
	if *flagHelp {
		flag.Usage()
		fmt.Printf(`

%s runs in one of two modes.

1) It takes in SQL, JSON or YAML from stdin, the --stmt arguments or
the named files and formats it to stdout. This mode is enabled if the
webserver is unconfigured.

2) It runs a webserver on a specified address. This is configured by
setting the BOXFMT_ADDR env variable to a bindable address (like ":8080"):

BOXFMT_ADDR=":8080" %[1]s
`, os.Args[0])
		return
	}
	if *flagVersion {
		fmt.Printf("boxfmt %s (%s, %s)\n", version, commit, date)
		return
	}

	var spec Specification
	err := envconfig.Process("boxfmt", &spec)
	if err != nil {
		log.Fatal(err.Error())
	}
	if spec.Addr != "" {
		serveHTTP(spec)
		return
	}

	if err := runCmd(flag.Args()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func optionsFromFlags() (boxfmt.Options, error) {
	opts := boxfmt.DefaultOptions()
	opts.Pretty.Margin = resolveWidth(*flagPrintWidth)
	opts.Pretty.IndentUnit = *flagTabWidth
	opts.Pretty.UseTabs = !*flagUseSpaces
	if err := opts.Pretty.Validate(); err != nil {
		return opts, err
	}
	caseFn, err := boxfmt.CaseMode(*flagCase)
	if err != nil {
		return opts, err
	}
	opts.Case = caseFn
	opts.Expanded = *flagExpanded
	opts.Color = *flagColor
	if *flagMaxBlankLines < 0 {
		return opts, errors.Errorf("max blank lines must be >= 0: %d", *flagMaxBlankLines)
	}
	opts.Trivia.MaxBlankLines = *flagMaxBlankLines
	opts.Trivia.WrapWidth = *flagWrapComments
	return opts, nil
}

func runCmd(files []string) error {
	if *flagPrintWidth < 0 {
		return errors.Errorf("line length must be >= 0: %d", *flagPrintWidth)
	}
	opts, err := optionsFromFlags()
	if err != nil {
		return err
	}
	if *flagWrite {
		if len(files) == 0 {
			return errors.New("-w needs file arguments")
		}
		// Colors would end up in the file.
		opts.Color = false
	}

	if len(files) > 0 {
		for _, name := range files {
			if err := fmtFile(opts, name); err != nil {
				return err
			}
		}
		return nil
	}

	sl := *flagStmts
	if len(sl) == 0 {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			return errors.Wrap(err, "read stdin")
		}
		sl = append(sl, string(in))
	}
	res, err := format(opts, *flagLang, sl)
	if err != nil {
		return err
	}
	fmt.Println(res)
	return nil
}

func fmtFile(opts boxfmt.Options, name string) error {
	in, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	res, err := format(opts, *flagLang, []string{string(in)})
	if err != nil {
		return errors.Wrap(err, name)
	}
	if !*flagWrite {
		fmt.Println(res)
		return nil
	}
	fi, err := os.Stat(name)
	if err != nil {
		return err
	}
	return errors.Wrap(renameio.WriteFile(name, []byte(res+"\n"), fi.Mode().Perm()), name)
}

// format dispatches srcs to the front end for lang.
func format(opts boxfmt.Options, lang string, srcs []string) (string, error) {
	switch lang {
	case "sql":
		return boxfmt.FmtSQL(opts, srcs)
	case "json", "yaml":
		var res string
		for i, src := range srcs {
			fn := boxfmt.FmtJSON
			if lang == "yaml" {
				fn = boxfmt.FmtYAML
			}
			out, err := fn(opts, src)
			if err != nil {
				return "", err
			}
			if i > 0 {
				res += "\n"
			}
			res += out
		}
		return res, nil
	}
	return "", errors.Errorf("unknown language %q", lang)
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
