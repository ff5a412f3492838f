package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/amsterdam/sensorregister/internal/app"
	"github.com/amsterdam/sensorregister/internal/feeds"
)

func main() {
	var (
		payload = flag.String("payload", "", "import a downloaded GeoJSON file for the single named feed")
		list    = flag.Bool("list", false, "list the known feeds and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [feed ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	names := flag.Args()

	if *list {
		catalog, err := feeds.Default()
		if err != nil {
			log.Fatal().Err(err).Msg("loading feed catalog")
		}
		for _, name := range catalog.Names() {
			fmt.Println(name)
		}
		return
	}

	if *payload != "" && len(names) != 1 {
		fmt.Fprintln(os.Stderr, "-payload needs exactly one feed name")
		os.Exit(2)
	}

	ctx, a, err := app.Bootstrap(context.Background(), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	if *payload != "" {
		data, err := os.ReadFile(*payload)
		if err != nil {
			a.Log.Fatal().Err(err).Msg("reading payload")
		}
		fc, err := feeds.Decode(data)
		if err != nil {
			a.Log.Fatal().Err(err).Msg("decoding payload")
		}
		if _, err := a.Service.ImportFeed(ctx, names[0], fc); err != nil {
			a.Log.Fatal().Err(err).Str("feed", names[0]).Msg("import failed")
		}
		return
	}

	failed := 0
	for _, r := range a.Service.ImportFeeds(ctx, feeds.NewClient(a.Config.FeedTimeout), names...) {
		if r.Err != nil {
			failed++
			fmt.Fprintln(os.Stderr, r.Err)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
