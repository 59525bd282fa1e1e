package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ferryman"

// Config holds the runtime settings. Values resolve in the usual
// precedence order: command-line flag, then FERRYMAN_* environment
// variable, then default.
type Config struct {
	v          *viper.Viper
	positional []string
}

// DefaultConfig returns a Config carrying only default and environment
// values.
func DefaultConfig() Config {
	c := Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}

// Load parses flags from the front of args and keeps the remainder as
// positional arguments. Flag parsing stops at the first token that is
// not a recognized flag, so a numeric argument like "-5" always stays
// positional and reaches the count validation.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("ferryman", pflag.ContinueOnError)
	fs.Bool("debug", false, "turn on debug logging")
	fs.Bool("shell", false, "open the interactive shell instead of solving once")
	fs.String("solve-log", "", "write a YAML log of every expanded position to this file")
	fs.Int("default-missionaries", 3, "missionary count used when no positional counts are given")
	fs.Int("default-cannibals", 3, "cannibal count used when no positional counts are given")

	flagTokens, positional := splitArgs(fs, args)
	if err := fs.Parse(flagTokens); err != nil {
		return err
	}

	c.v = viper.New()
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	c.positional = positional
	return nil
}

// splitArgs consumes recognized flags, single or double dash, from the
// front of args. Everything from the first unrecognized token on is
// positional. Flag tokens are normalized to the --name form.
func splitArgs(fs *pflag.FlagSet, args []string) (flagTokens, positional []string) {
	i := 0
	for i < len(args) {
		tok := args[i]
		if !strings.HasPrefix(tok, "-") {
			break
		}
		name, val, hasVal := strings.Cut(strings.TrimLeft(tok, "-"), "=")
		f := fs.Lookup(name)
		if f == nil {
			break
		}
		switch {
		case hasVal:
			flagTokens = append(flagTokens, "--"+name+"="+val)
			i++
		case f.Value.Type() == "bool":
			flagTokens = append(flagTokens, "--"+name)
			i++
		default:
			flagTokens = append(flagTokens, "--"+name)
			i++
			if i < len(args) {
				flagTokens = append(flagTokens, args[i])
				i++
			}
		}
	}
	return flagTokens, args[i:]
}

// PositionalArgs returns the non-flag arguments in order.
func (c *Config) PositionalArgs() []string {
	return c.positional
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// AllSettings returns every resolved setting, for startup logging.
func (c *Config) AllSettings() map[string]interface{} {
	return c.v.AllSettings()
}
