package config

import (
	"fmt"
	"strings"
)

// ConfigFileName is the name written by the init command.
const ConfigFileName = ".wikispan.yml"

// GenerateTemplate returns a commented configuration file holding the
// values of c. Lists that are empty are shown as commented examples.
func GenerateTemplate(c *Config) []byte {
	if c == nil {
		c = NewConfig()
	}

	var sb strings.Builder
	sb.WriteString("# wikispan configuration\n\n")

	sb.WriteString("# How deeply templates, links and tags may nest.\n")
	fmt.Fprintf(&sb, "max_depth: %d\n\n", c.MaxDepth)

	sb.WriteString("# Upper bound for one pattern match (e.g. 500ms). 0 disables it.\n")
	if c.MatchTimeout > 0 {
		fmt.Fprintf(&sb, "match_timeout: %s\n\n", c.MatchTimeout)
	} else {
		sb.WriteString("# match_timeout: 1s\n\n")
	}

	sb.WriteString("# Extension tags in addition to the MediaWiki defaults.\n")
	if len(c.Tags.Parsable) > 0 || len(c.Tags.Unparsable) > 0 {
		sb.WriteString("tags:\n")
		writeList(&sb, "  parsable", c.Tags.Parsable, "  ")
		writeList(&sb, "  unparsable", c.Tags.Unparsable, "  ")
	} else {
		sb.WriteString("# tags:\n#   parsable: [mytag]\n#   unparsable: [code-sample]\n")
	}
	sb.WriteString("\n")

	sb.WriteString("# Extra magic words and parser functions.\n")
	writeList(&sb, "parser_functions", c.ParserFunctions, "")
	if len(c.ParserFunctions) == 0 {
		sb.WriteString("# parser_functions: [PAGEBANNER]\n")
	}
	sb.WriteString("\n")

	sb.WriteString("# File extensions read when a directory is given.\n")
	writeList(&sb, "extensions", c.Extensions, "")
	sb.WriteString("\n")

	sb.WriteString("# Glob patterns of files to skip.\n")
	writeList(&sb, "ignore", c.Ignore, "")
	if len(c.Ignore) == 0 {
		sb.WriteString("# ignore:\n#   - \"drafts/**\"\n")
	}

	return []byte(sb.String())
}

func writeList(sb *strings.Builder, key string, values []string, indent string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(key + ":\n")
	for _, value := range values {
		fmt.Fprintf(sb, "%s  - %q\n", indent, value)
	}
}
