package main

import (
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ytlog "github.com/famomatic/ytinfo/internal/log"
)

const (
	keyProxy    = "proxy"
	keyDebug    = "debug"
	keyLogLevel = "log-level"
	keyTimeout  = "timeout"
	keyBaseURL  = "base-url"
	keyFull     = "full"
	keyLang     = "lang"
	keyJSON     = "json"
	keyHeader   = "header"
	keyBody     = "config-body"
)

// newConfig returns a viper instance reading YTINFO_* environment variables,
// with dashes in keys mapped to underscores.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("YTINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := newConfig()

	root := &cobra.Command{
		Use:           "ytinfo",
		Short:         "Resolve video metadata and stream formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := v.GetString(keyLogLevel)
			if v.GetBool(keyDebug) && level == "" {
				level = "debug"
			}
			ytlog.Configure(ytlog.Config{Level: level, Output: cmd.ErrOrStderr(), Pretty: true})
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String(keyProxy, "", "Proxy URL for upstream requests")
	flags.Bool(keyDebug, false, "Log decipherment and manifest details")
	flags.String(keyLogLevel, "", "Log level (debug, info, warn, error)")
	flags.Duration(keyTimeout, 30*time.Second, "Timeout for one resolution")
	flags.String(keyBaseURL, "", "Override the watch page host")
	lo.Must0(flags.MarkHidden(keyBaseURL))
	for _, name := range []string{keyProxy, keyDebug, keyLogLevel, keyTimeout, keyBaseURL} {
		lo.Must0(v.BindPFlag(name, flags.Lookup(name)))
	}

	root.AddCommand(newInfoCmd(v))
	return root
}
