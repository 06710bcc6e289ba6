package commands

import (
	"flag"
	"fmt"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

// CheckConfigCommand validates the configuration file and prints the
// effective configuration with defaults applied.
type CheckConfigCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config
}

func CreateCheckConfigCommand() *CheckConfigCommand {
	return &CheckConfigCommand{}
}

func (c *CheckConfigCommand) Name() string {
	return "check-config"
}

func (c *CheckConfigCommand) Init(args []string, ctx *AppContext) error {
	c.fs = flag.NewFlagSet("check-config", flag.ExitOnError)
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *CheckConfigCommand) Run() error {
	serialized, err := c.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %v", err)
	}

	log.Infof("Configuration is valid (%d script(s) configured)", len(c.cfg.Scripts))
	fmt.Println(serialized.String())

	return nil
}
