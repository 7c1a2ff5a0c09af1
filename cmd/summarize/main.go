package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"nota/internal/acquire"
	"nota/internal/notes"
	"nota/internal/summarize"
	"nota/internal/youtube"
)

func main() {
	var (
		url        = flag.String("url", "", "YouTube video URL")
		model      = flag.String("model", "", "Preferred model (default: provider roster)")
		lang       = flag.String("lang", "en", "Caption language code")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		verbose    = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -url https://www.youtube.com/watch?v=xxx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url https://youtu.be/xxx -model gemini-2.5-flash -o notes.md\n", os.Args[0])
	}

	flag.Parse()

	_ = godotenv.Load()

	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *url == "" {
		fmt.Fprintf(os.Stderr, "Error: YouTube URL is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()

	provider, err := summarize.NewProvider(ctx, summarize.Config{
		APIKey: os.Getenv("GOOGLE_GENERATIVE_AI_API_KEY"),
		Model:  *model,
		Retry:  summarize.DefaultRetryPolicy(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := youtube.NewClient()
	pipeline := acquire.NewPipeline(
		acquire.NewPageLayer(acquire.NewHTTPFetcher()),
		acquire.NewTranscriptServiceLayer(os.Getenv("TRANSCRIPT_SERVICE_URL")),
		acquire.NewClientLibraryLayer(client, *lang),
		acquire.NewAudioSampleLayer(client),
		acquire.NewMetadataLayer(),
	)

	service := notes.NewService(client, pipeline, provider)

	result := service.SummarizeURL(ctx, *url)
	if !result.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.Error)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(result.Data), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to write output file: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "Output written to: %s\n", *outputFile)
		}
	} else {
		fmt.Println(result.Data)
	}
}
