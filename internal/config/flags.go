package config

import (
	"flag"

	"github.com/Faultbox/subdivision/pkg/subdiv"
)

// Flags holds command-line overrides shared by every subcommand. Zero
// values (and Levels < 0) leave the loaded config untouched.
type Flags struct {
	Config string
	Debug  bool
	Scheme string
	Levels int
	Shape  string
	Output string
}

// RegisterFlags binds the shared override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Scheme, "scheme", "", "Subdivision scheme ("+schemeList()+")")
	fs.IntVar(&f.Levels, "levels", -1, "Subdivision levels")
	fs.StringVar(&f.Shape, "shape", "", "Base shape")
	fs.StringVar(&f.Output, "out", "", "Preview output path")
	return f
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) error {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Scheme != "" {
		s, err := subdiv.ParseScheme(f.Scheme)
		if err != nil {
			return err
		}
		cfg.Subdivision.Scheme = s
	}
	if f.Levels >= 0 {
		cfg.Subdivision.Levels = f.Levels
	}
	if f.Shape != "" {
		cfg.Input.Shape = f.Shape
	}
	if f.Output != "" {
		cfg.Preview.Output = f.Output
	}
	return nil
}

func schemeList() string {
	var s string
	for i, sc := range subdiv.Schemes() {
		if i > 0 {
			s += ", "
		}
		s += sc.String()
	}
	return s
}
