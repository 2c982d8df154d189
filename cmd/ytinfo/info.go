package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famomatic/ytinfo/client"
	ytlog "github.com/famomatic/ytinfo/internal/log"
)

func newInfoCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <video-id|url>",
		Short: "Print the info record of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(v)
			if err != nil {
				return &usageError{err: err}
			}

			logger := ytlog.WithComponent("cli")
			c := client.New(client.Config{
				ProxyURL: v.GetString(keyProxy),
				BaseURL:  v.GetString(keyBaseURL),
				Cache:    client.NewMemoryCache(10*time.Minute, 64),
				Logger:   &logger,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration(keyTimeout))
			defer cancel()

			get := c.GetBasicInfo
			if v.GetBool(keyFull) {
				get = c.GetFullInfo
			}
			info, err := get(ctx, args[0], opts)
			if err != nil {
				return err
			}

			if v.GetBool(keyJSON) {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			return writeTable(cmd.OutOrStdout(), info)
		},
	}

	flags := cmd.Flags()
	flags.Bool(keyFull, false, "Decipher formats and merge the DASH and HLS manifests")
	flags.String(keyLang, "en", "Interface language (BCP-47)")
	flags.Bool(keyJSON, false, "Print the record as JSON")
	flags.StringSlice(keyHeader, nil, `Extra request header as "Name: value" (repeatable)`)
	flags.String(keyBody, "", "Read the watch payload from a file instead of fetching it")
	for _, name := range []string{keyFull, keyLang, keyJSON, keyHeader, keyBody} {
		lo.Must0(v.BindPFlag(name, flags.Lookup(name)))
	}
	return cmd
}

// buildOptions maps flags and environment onto per-call client options.
func buildOptions(v *viper.Viper) (client.Options, error) {
	opts := client.Options{
		Lang:  v.GetString(keyLang),
		Debug: v.GetBool(keyDebug),
		RequestOptions: client.RequestOptions{
			ProxyURL: v.GetString(keyProxy),
		},
	}

	headers := v.GetStringSlice(keyHeader)
	if len(headers) > 0 {
		opts.RequestOptions.Headers = make(http.Header)
	}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return client.Options{}, fmt.Errorf("malformed header %q, want \"Name: value\"", h)
		}
		opts.RequestOptions.Headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if path := v.GetString(keyBody); path != "" {
		body, err := os.ReadFile(path)
		if err != nil {
			return client.Options{}, fmt.Errorf("read watch payload: %w", err)
		}
		opts.ConfigBody = body
	}
	return opts, nil
}

func writeJSON(w io.Writer, info *client.VideoInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func writeTable(w io.Writer, info *client.VideoInfo) error {
	d := info.Details
	fmt.Fprintf(w, "Title:    %s\n", d.Title)
	fmt.Fprintf(w, "Author:   %s\n", d.Author.Name)
	fmt.Fprintf(w, "Length:   %s\n", time.Duration(d.LengthSeconds)*time.Second)
	fmt.Fprintf(w, "Views:    %d\n", d.ViewCount)
	fmt.Fprintf(w, "URL:      %s\n", d.VideoURL)
	fmt.Fprintf(w, "Full:     %t\n", info.Full)
	fmt.Fprintf(w, "Formats:  %d\n\n", len(info.Formats))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUALITY\tMIME\tBITRATE\tKIND")
	for _, f := range info.Formats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", f.ID, f.QualityLabel, f.MimeType, f.Bitrate, formatKind(f))
	}
	return tw.Flush()
}

func formatKind(f client.Format) string {
	switch {
	case f.IsHLS:
		return "hls"
	case f.IsDashMPD:
		return "dash"
	case f.HasVideo && f.HasAudio:
		return "av"
	case f.HasVideo:
		return "video"
	case f.HasAudio:
		return "audio"
	}
	return "-"
}
