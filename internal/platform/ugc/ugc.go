// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

/*
Package ugc renders user-generated comment bodies to safe display HTML.

The pipeline runs exactly once, at post time: markdown is rendered with
goldmark and the result is sanitized with bluemonday's UGC policy. The
sanitized HTML is stored denormalized on the comment next to the raw text —
the same snapshot-at-creation policy used for the author display fields.
*/
package ugc

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// policy is safe for concurrent use once constructed.
var policy = bluemonday.UGCPolicy()

// Render converts a raw comment body into sanitized display HTML.
//
// A body that fails markdown rendering falls back to escaped plain text, so
// Render is total: it always returns displayable HTML.
func Render(raw string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(raw), &buf); err != nil {
		return "<p>" + html.EscapeString(raw) + "</p>"
	}

	return strings.TrimSpace(policy.Sanitize(buf.String()))
}

// Sanitize strips unsafe markup from already-rendered HTML without the
// markdown pass. Used when importing payloads that carry ContentHTML.
func Sanitize(rendered string) string {
	return strings.TrimSpace(policy.Sanitize(rendered))
}
