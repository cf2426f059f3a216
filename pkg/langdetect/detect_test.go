package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikispan/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body string
		want string
	}{
		"bash shebang":       {"#!/bin/bash\nphp maintenance/run.php update", "bash"},
		"python shebang":     {"#!/usr/bin/env python3\nimport pywikibot", "python"},
		"scribunto module":   {"local p = {}\n\nfunction p.main(frame)\n\treturn 'x'\nend\n\nreturn p", "lua"},
		"php hook":           {"<?php\n$wgHooks['BeforePageDisplay'][] = 'f';", "php"},
		"templatedata json":  {`{"params": {"1": {"label": "Name"}}}`, "json"},
		"pywikibot script":   {"def main():\n    site.login()\n\nif __name__ == '__main__':\n    main()", "python"},
		"resource loader js": {"mw.loader.using('mediawiki.api').then(() => new mw.Api());", "javascript"},
		"database query":     {"SELECT page_title FROM page WHERE page_namespace = 10;", "sql"},
		"html page":          {"<!DOCTYPE html>\n<html><body></body></html>", "html"},
		"prose":              {"See the talk page before editing this section", "text"},
		"blank":              {" \n\t ", "text"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.body)))
		})
	}
}

func TestForTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tag      string
		content  string
		expected string
	}{
		{name: "templatestyles is css", tag: "templatestyles", content: "", expected: "css"},
		{name: "templatedata is json", tag: "TemplateData", content: "{}", expected: "json"},
		{name: "math is latex", tag: "math", content: `\frac{1}{2}`, expected: "latex"},
		{name: "ref is wikitext", tag: "ref", content: "{{cite web}}", expected: langdetect.Wikitext},
		{name: "code tag is detected", tag: "syntaxhighlight", content: "<?php\nexit;", expected: "php"},
		{name: "empty code tag", tag: "pre", content: "", expected: langdetect.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, langdetect.ForTag(tt.tag, []byte(tt.content)))
		})
	}
}

func BenchmarkDetectLua(b *testing.B) {
	code := []byte("local p = {}\nfunction p.main(frame)\n\treturn frame.args[1]\nend\nreturn p")
	for b.Loop() {
		langdetect.Detect(code)
	}
}
