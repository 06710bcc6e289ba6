package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/generator"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/source"
)

// GenerateScriptCommand implements the generate-script subcommand. It either
// takes the name of a configured script or an ad-hoc source/name pair.
type GenerateScriptCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	scriptName string

	rawSource     string
	listName      string
	outputFile    string
	header        stringSliceFlag
	comment       string
	timeout       int
	logLevel      string
	noCatchErrors bool
	noIPv4        bool
	noIPv6        bool
	force         bool
	dynamic       bool
	disabled      bool
}

func CreateGenerateScriptCommand() *GenerateScriptCommand {
	return &GenerateScriptCommand{}
}

func (c *GenerateScriptCommand) Name() string {
	return "generate-script"
}

func (c *GenerateScriptCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet("generate-script", flag.ExitOnError)

	c.fs.StringVar(&c.rawSource, "source", "", "Source of the IP addresses, either a local file or a URL")
	c.fs.StringVar(&c.listName, "name", "", "Name of the address list to be created in RouterOS")
	c.fs.StringVar(&c.outputFile, "output", "", "Path to the output file where the generated script will be saved")
	c.fs.Var(&c.header, "header", "Header comment line for the generated script (can be repeated)")
	c.fs.StringVar(&c.comment, "comment", "", "Comment for the address list entries")
	c.fs.IntVar(&c.timeout, "timeout", 0, "Timeout for dynamic address list entries in seconds")
	c.fs.StringVar(&c.logLevel, "log-level", "debug", "Log level for the generated script (debug|info|warning|error)")
	c.fs.BoolVar(&c.noCatchErrors, "no-catch-errors", false, "Disable error catching in the generated script")
	c.fs.BoolVar(&c.noIPv4, "no-ipv4", false, "Exclude IPv4 addresses from the generated script")
	c.fs.BoolVar(&c.noIPv6, "no-ipv6", false, "Exclude IPv6 addresses from the generated script")
	c.fs.BoolVar(&c.force, "force", false, "Force overwrite the output file if it already exists")
	c.fs.BoolVar(&c.dynamic, "dynamic", false, "Create dynamic address list entries")
	c.fs.BoolVar(&c.disabled, "disabled", false, "Create disabled address list entries")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	c.scriptName = c.fs.Arg(0)

	return nil
}

func (c *GenerateScriptCommand) Run() error {
	if c.outputFile == "" {
		// The script goes to stdout; keep logs out of it.
		log.SetForceStdErr(true)
	}

	script, gen, downloadDir, err := c.resolveScript()
	if err != nil {
		return err
	}

	src, err := source.FromScript(script)
	if err != nil {
		return err
	}

	name := c.scriptName
	if name == "" {
		name = script.ListName
	}

	sourcePath, err := source.Resolve(src, name, downloadDir)
	if err != nil {
		return err
	}

	output, err := gen.Generate(generator.Request{
		SourcePath:    sourcePath,
		SourceDisplay: src.String(),
		ListName:      script.ListName,
		Header:        script.Header,
		Comment:       script.Comment,
		Timeout:       script.Timeout,
		LogLevel:      script.LogLevel,
		NoCatchErrors: script.NoCatchErrors,
		NoIPv4:        script.NoIPv4,
		NoIPv6:        script.NoIPv6,
		Dynamic:       script.Dynamic,
		Disabled:      script.Disabled,
	})
	if err != nil {
		return err
	}

	return c.writeOutput(output)
}

// resolveScript produces the script definition either from the configuration
// (when a script name was given) or from the command-line flags.
func (c *GenerateScriptCommand) resolveScript() (*config.ScriptConfig, *generator.Generator, string, error) {
	if c.scriptName != "" {
		cfg, err := loadAndValidateConfigOrFail(c.ctx.ConfigPath)
		if err != nil {
			return nil, nil, "", err
		}

		script, err := cfg.ScriptByName(c.scriptName)
		if err != nil {
			return nil, nil, "", err
		}

		return script, generator.New(cfg.General, c.ctx.Version), cfg.GetAbsDownloadDir(), nil
	}

	if c.rawSource == "" {
		return nil, nil, "", fmt.Errorf("either a script name or -source must be provided")
	}
	if c.listName == "" {
		return nil, nil, "", fmt.Errorf("-name must be provided when no script name is given")
	}

	level, err := config.ParseScriptLogLevel(c.logLevel)
	if err != nil {
		return nil, nil, "", err
	}

	src, err := source.Parse(c.rawSource)
	if err != nil {
		return nil, nil, "", err
	}

	script := &config.ScriptConfig{
		ListName:      c.listName,
		Header:        c.header,
		Comment:       c.comment,
		Timeout:       c.timeout,
		LogLevel:      level,
		NoCatchErrors: c.noCatchErrors,
		NoIPv4:        c.noIPv4,
		NoIPv6:        c.noIPv6,
		Dynamic:       c.dynamic,
		Disabled:      c.disabled,
	}
	if src.Kind == source.Remote {
		script.URL = src.URL
	} else {
		script.File = src.Path
	}

	return script, generator.New(nil, c.ctx.Version), os.TempDir(), nil
}

func (c *GenerateScriptCommand) writeOutput(output string) error {
	if c.outputFile == "" {
		fmt.Println(output)
		return nil
	}

	if _, err := os.Stat(c.outputFile); err == nil && !c.force {
		return fmt.Errorf("output file '%s' already exists, use -force to overwrite", c.outputFile)
	}

	if err := os.MkdirAll(filepath.Dir(c.outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	if err := os.WriteFile(c.outputFile, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %v", err)
	}

	log.Infof("Script saved to '%s'", c.outputFile)
	return nil
}
