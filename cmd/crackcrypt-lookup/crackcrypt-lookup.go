package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pborman/getopt/v2"

	"crackcrypt.com/crackcrypt-go/internal/version"
	"crackcrypt.com/crackcrypt-go/pkg/api"
	"crackcrypt.com/crackcrypt-go/pkg/client"
	"crackcrypt.com/crackcrypt-go/pkg/hashes"
	"crackcrypt.com/crackcrypt-go/pkg/log"
	"crackcrypt.com/crackcrypt-go/pkg/lookup"
)

const usage = `crackcrypt-lookup [OPTIONS] (-H HASH | -i INPUT-FILE) -a ALG
    Options:
      -h --help Display this help
      -v --version Display program version
      -H --hash HASH
      -i --input INPUT-FILE
      -a --alg ALG
      -o --output OUTPUT-FILE
      --url URL
      --user-agent USER-AGENT
      --diagnostics LEVEL

    Checks one or many hashes using the CrackCrypt lookup API.

    Either a single hash is given with -H, or -i names a file with
    one hash per line; empty lines are ignored. The algorithm (e.g.,
    md5, sha1) is required, and applies to all hashes.

    Hashes are looked up one at a time, with a delay of one second
    after each request. Progress is written to stdout.

    Results are written as a json array, in input order, to the file
    given with -o, or to stdout if no output file is provided.

    The --url option overrides the API base url, default
    https://crackcrypt.com/api/v1.

    The --diagnostics option specifies level of diagnostic messages,
    one of "fatal", "error", "warning", "info" (default), or "debug".
`

type Settings struct {
	hash        string
	inputFile   string
	alg         string
	outputFile  string
	url         string
	userAgent   string
	diagnostics string
	help        bool
	version     bool
}

func main() {
	log.SetDate(false)

	var settings Settings
	if err := settings.parse(os.Args); err != nil {
		log.Fatal("%v (see --help)", err)
	}
	if settings.help {
		fmt.Print(usage)
		os.Exit(0)
	}
	if settings.version {
		version.DisplayVersion("crackcrypt-lookup")
		os.Exit(0)
	}
	if len(settings.diagnostics) > 0 {
		if err := log.SetLevelFromString(settings.diagnostics); err != nil {
			log.Fatal("%v", err)
		}
	}
	cli, err := settings.newClient()
	if err != nil {
		log.Fatal("%v", err)
	}
	app := application{service: cli, stdout: os.Stdout}
	if err := app.run(context.Background(), &settings); err != nil {
		log.Fatal("%v", err)
	}
}

func (s *Settings) parse(args []string) error {
	set := getopt.New()
	set.SetParameters("")
	set.SetUsage(func() { fmt.Print(usage) })

	set.FlagLong(&s.hash, "hash", 'H', "Single hex-encoded hash to check")
	set.FlagLong(&s.inputFile, "input", 'i', "File with one hash per line")
	set.FlagLong(&s.alg, "alg", 'a', "Hash algorithm")
	set.FlagLong(&s.outputFile, "output", 'o', "Output file")
	set.FlagLong(&s.url, "url", 0, "API base url")
	set.FlagLong(&s.userAgent, "user-agent", 0, "HTTP user agent")
	set.FlagLong(&s.diagnostics, "diagnostics", 0, "Level of diagnostic messages")
	set.FlagLong(&s.help, "help", 'h', "Display help")
	set.FlagLong(&s.version, "version", 'v', "Display version")
	if err := set.Getopt(args, nil); err != nil {
		return err
	}
	if s.help || s.version {
		return nil
	}
	if set.NArgs() > 0 {
		return fmt.Errorf("too many arguments")
	}
	if len(s.hash) > 0 && len(s.inputFile) > 0 {
		return fmt.Errorf("options --hash and --input are mutually exclusive")
	}
	if len(s.hash) == 0 && len(s.inputFile) == 0 {
		return fmt.Errorf("one of --hash or --input is required")
	}
	if len(s.alg) == 0 {
		return fmt.Errorf("option --alg is required")
	}
	return nil
}

func (s *Settings) newClient() (*client.Client, error) {
	cfg := client.Config{UserAgent: s.userAgent}
	if len(s.url) > 0 {
		url, err := client.NormalizeURL(s.url)
		if err != nil {
			return nil, err
		}
		cfg.URL = url
	}
	return client.New(cfg), nil
}

func (s *Settings) readHashes() ([]string, error) {
	if len(s.hash) > 0 {
		return []string{hashes.NormalizeHash(s.hash)}, nil
	}
	return hashes.ReadFile(s.inputFile)
}

type application struct {
	service api.Lookup
	stdout  io.Writer
	// Zero implies lookup.DefaultDelay.
	delay time.Duration
}

func (app *application) run(ctx context.Context, s *Settings) error {
	list, err := s.readHashes()
	if err != nil {
		return err
	}
	log.Debug("checking %d hashes", len(list))

	runner := lookup.NewRunner(app.service, &lookup.Config{
		Algorithm: hashes.NormalizeAlgorithm(s.alg),
		Delay:     app.delay,
		Progress:  app.stdout,
	})
	results, err := runner.Run(ctx, list)
	if err != nil {
		return err
	}

	if len(s.outputFile) == 0 {
		return lookup.WriteResults(app.stdout, results)
	}
	if err := lookup.WriteResultsFile(s.outputFile, results); err != nil {
		return fmt.Errorf("error writing to %s: %w", s.outputFile, err)
	}
	fmt.Fprintf(app.stdout, "Done: %d hashes checked, results saved to %s\n", len(results), s.outputFile)
	return nil
}
