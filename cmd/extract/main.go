package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"nota/internal/acquire"
	"nota/internal/youtube"
)

func main() {
	var (
		url      = flag.String("url", "", "YouTube video URL")
		lang     = flag.String("lang", "en", "Caption language code")
		format   = flag.String("format", "text", "Output format: text, json, srt (json/srt fetch captions directly)")
		showInfo = flag.Bool("info", false, "Show video info only")
		verbose  = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extracts video content (transcript or audio sample) without summarizing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -url https://www.youtube.com/watch?v=xxx\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url https://youtu.be/xxx -lang ja -v\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url https://youtu.be/xxx -format srt\n", os.Args[0])
	}

	flag.Parse()

	if !*verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	if *url == "" {
		fmt.Fprintf(os.Stderr, "Error: YouTube URL is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"text": true, "json": true, "srt": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: Invalid format '%s'. Must be: text, json, or srt\n", *format)
		os.Exit(1)
	}

	ref, ok := youtube.NewVideoReference(*url)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: Invalid YouTube URL\n")
		os.Exit(1)
	}

	ctx := context.Background()
	client := youtube.NewClient()

	if *showInfo {
		video, err := client.GetVideo(ctx, ref.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to get video: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("=== Video Info ===")
		fmt.Printf("Title:    %s\n", video.Title)
		fmt.Printf("Author:   %s\n", video.Author)
		fmt.Printf("Duration: %s\n", video.Duration)
		fmt.Printf("ID:       %s\n", video.ID)
		return
	}

	// json/srt はタイムスタンプが必要なので字幕を直接取得する
	if *format != "text" {
		printCaptions(ctx, client, ref.ID, *lang, *format)
		return
	}

	meta := client.FetchMetadata(ctx, ref.ID)
	pipeline := acquire.NewPipeline(
		acquire.NewPageLayer(acquire.NewHTTPFetcher()),
		acquire.NewTranscriptServiceLayer(os.Getenv("TRANSCRIPT_SERVICE_URL")),
		acquire.NewClientLibraryLayer(client, *lang),
		acquire.NewAudioSampleLayer(client),
		acquire.NewMetadataLayer(),
	)

	payload := pipeline.Run(ctx, &acquire.Request{Ref: ref, Meta: meta})
	if payload == nil {
		fmt.Fprintf(os.Stderr, "Error: No content could be acquired\n")
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Acquired %s payload (%d bytes)\n", payload.Kind, payload.SizeBytes)
	}

	fmt.Println(payload.Data)
}

func printCaptions(ctx context.Context, client *youtube.Client, id, lang, format string) {
	video, err := client.GetVideo(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to get video: %v\n", err)
		os.Exit(1)
	}
	if !video.HasCaptions() {
		fmt.Fprintf(os.Stderr, "Error: No captions available for this video\n")
		os.Exit(1)
	}

	result, err := client.FetchCaption(ctx, video, lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to fetch captions: %v\n", err)
		os.Exit(1)
	}

	switch format {
	case "json":
		output, err := result.FormatAsJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to format JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	case "srt":
		fmt.Println(result.FormatAsSRT())
	}
}
