// Package generator renders RouterOS address-list scripts from plain text
// lists of IP networks.
package generator

import (
	"bufio"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasttemplate"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/errors"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/utils"
)

const generatorName = "mikrotik-addresslist"

// Per-entry RouterOS statement templates.
var (
	addTemplate = fasttemplate.New(
		`add address="{{address}}" list="{{list}}"{{options}}`, "{{", "}}")
	addedLogTemplate = fasttemplate.New(
		`:log {{level}} "[{{no}}/{{total}}] Added address '{{address}}' to list '{{list}}'"`, "{{", "}}")
	skippedLogTemplate = fasttemplate.New(
		`:log {{level}} "[{{no}}/{{total}}] Skipped adding address '{{address}}' to list '{{list}}' because entry already exists"`, "{{", "}}")
)

// Request describes a single script generation. The source must already be
// resolved to a readable local file; Generate performs no network I/O.
type Request struct {
	// SourcePath is the local file containing one IP/CIDR per line.
	SourcePath string
	// SourceDisplay is shown in the script header (the original file path or
	// URL). Falls back to SourcePath when empty.
	SourceDisplay string
	// ListName is the firewall address-list name.
	ListName string
	// Header lines are appended to the boxed comment header.
	Header []string
	// Comment is attached to every entry, if set.
	Comment string
	// Timeout in seconds makes entries expire; 0 means no timeout.
	Timeout int
	// LogLevel is the verbosity keyword of the generated :log statements.
	LogLevel config.ScriptLogLevel
	// NoCatchErrors disables the :onerror wrapper around each add statement.
	NoCatchErrors bool
	// NoIPv4 excludes IPv4 entries.
	NoIPv4 bool
	// NoIPv6 excludes IPv6 entries.
	NoIPv6 bool
	// Dynamic marks entries as dynamic=yes.
	Dynamic bool
	// Disabled marks entries as disabled=yes.
	Disabled bool
}

// Generator renders scripts. The zero value is not usable; use New.
type Generator struct {
	// DatetimeFormat is the Go reference layout of the header timestamp.
	DatetimeFormat string
	// Version is reported in the header title line.
	Version string
	// Now supplies the generation timestamp.
	Now func() time.Time
}

// New creates a Generator using the general configuration.
func New(general *config.GeneralConfig, version string) *Generator {
	format := config.DefaultDatetimeFormat
	if general != nil && general.DatetimeFormat != "" {
		format = general.DatetimeFormat
	}
	return &Generator{
		DatetimeFormat: format,
		Version:        version,
		Now:            time.Now,
	}
}

// Generate renders the full script: boxed comment header, a blank line and
// the statement body.
func (g *Generator) Generate(req Request) (string, error) {
	if req.SourcePath == "" {
		return "", errors.NewInputError("either a local file or a URL must be provided")
	}
	if !utils.IsRegularFile(req.SourcePath) {
		return "", errors.NewSourceNotFoundError(
			fmt.Sprintf("source file \"%s\" does not exist or is not a regular file", req.SourcePath))
	}

	body, entryCount, err := g.generateBody(req)
	if err != nil {
		return "", err
	}

	header := g.generateHeader(req, entryCount)

	return header + "\n\n" + body, nil
}

// generateBody performs a single forward pass over the input lines and
// returns the statement body and the number of emitted entries.
func (g *Generator) generateBody(req Request) (string, int, error) {
	lineCount, err := countLines(req.SourcePath)
	if err != nil {
		return "", 0, err
	}

	level := req.LogLevel.String()

	var body strings.Builder
	body.WriteString(fmt.Sprintf(":log %s \"Updating address list '%s' ...\"", level, req.ListName))
	body.WriteString("\n/ip/firewall/address-list")

	log.Debugf("Reading source file '%s' ...", req.SourcePath)

	entryCount := 0
	err = forEachLine(req.SourcePath, func(no int, raw string) {
		line := strings.TrimSpace(raw)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			return
		}

		network, err := parseNetwork(line)
		if err != nil {
			// Recoverable: log and continue with the next line. Line
			// numbering keeps the original file positions.
			log.Errorf("[%d/%d] %v", no, lineCount, err)
			return
		}

		if network.Addr().Is4() && req.NoIPv4 {
			log.Debugf("[%d/%d] Skipping IPv4 network: %s", no, lineCount, network)
			return
		}
		if network.Addr().Is6() && req.NoIPv6 {
			log.Debugf("[%d/%d] Skipping IPv6 network: %s", no, lineCount, network)
			return
		}

		log.Debugf("[%d/%d] Adding network '%s' to script ...", no, lineCount, network)
		body.WriteString("\n")
		body.WriteString(renderEntry(req, network, no, lineCount))
		entryCount++
	})
	if err != nil {
		return "", 0, err
	}

	body.WriteString(fmt.Sprintf(
		"\n:log %s \"Finished updating address list '%s' with %d entries.\"",
		level, req.ListName, entryCount))

	return body.String(), entryCount, nil
}

// renderEntry renders one address-list add statement, optionally wrapped in
// an :onerror block that logs whether the entry was added or already present.
func renderEntry(req Request, network netip.Prefix, no, total int) string {
	var options strings.Builder
	if req.Comment != "" {
		options.WriteString(fmt.Sprintf(" comment=\"%s\"", req.Comment))
	}
	if req.Timeout > 0 {
		options.WriteString(fmt.Sprintf(" timeout=\"%ds\"", req.Timeout))
	}
	options.WriteString(boolOption("dynamic", req.Dynamic))
	options.WriteString(boolOption("disabled", req.Disabled))

	vars := map[string]interface{}{
		"address": network.String(),
		"list":    req.ListName,
		"level":   req.LogLevel.String(),
		"no":      fmt.Sprintf("%d", no),
		"total":   fmt.Sprintf("%d", total),
		"options": options.String(),
	}

	add := addTemplate.ExecuteString(vars)

	if req.NoCatchErrors {
		return add
	}

	return ":onerror in={ " + add +
		"; " + addedLogTemplate.ExecuteString(vars) +
		" } do={ " + skippedLogTemplate.ExecuteString(vars) +
		"; }  error=cnt"
}

func boolOption(name string, value bool) string {
	if value {
		return " " + name + "=yes"
	}
	return " " + name + "=no"
}

// parseNetwork parses a line as an IP network in CIDR or bare-address form.
// A bare address implies a full-length prefix. Host bits are masked off so
// the emitted address is in normalized network notation.
func parseNetwork(line string) (netip.Prefix, error) {
	if !strings.Contains(line, "/") {
		addr, err := netip.ParseAddr(line)
		if err != nil || addr.Zone() != "" {
			return netip.Prefix{}, fmt.Errorf("'%s' does not appear to be an IPv4 or IPv6 network", line)
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}

	prefix, err := netip.ParsePrefix(line)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("'%s' does not appear to be an IPv4 or IPv6 network", line)
	}
	return prefix.Masked(), nil
}

// countLines counts the total number of lines in the source file. The count
// is only used for the "[n/total]" progress annotations.
func countLines(path string) (int, error) {
	count := 0
	if err := forEachLine(path, func(_ int, _ string) { count++ }); err != nil {
		return 0, err
	}
	return count, nil
}

// forEachLine calls fn for every line of the file with its 1-indexed line
// number. Lines of any length are handled, so an absurdly long line is just
// another line that will fail to parse as a network.
func forEachLine(path string, fn func(no int, line string)) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.NewSourceNotFoundError(
			fmt.Sprintf("failed to open source file \"%s\": %v", path, err))
	}
	defer utils.CloseOrWarn(file)

	reader := bufio.NewReader(file)
	no := 0
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			no++
			fn(no, strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewInternalError("failed to read source file", err)
		}
	}
}
