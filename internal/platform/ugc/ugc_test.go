// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

package ugc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledong198910/blogtruyentranhai/internal/platform/ugc"
)

/*
TestRender_Markdown asserts basic markdown renders to HTML.
*/
func TestRender_Markdown(t *testing.T) {
	got := ugc.Render("truyện **hay** lắm")

	assert.Contains(t, got, "<strong>hay</strong>")
	assert.Contains(t, got, "truyện")
}

/*
TestRender_StripsScripts asserts script injection is removed by the UGC policy.
*/
func TestRender_StripsScripts(t *testing.T) {
	got := ugc.Render(`hello <script>alert("x")</script> world`)

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert")
	assert.Contains(t, got, "hello")
}

/*
TestRender_KeepsSafeLinks asserts UGC-safe markup survives sanitization.
*/
func TestRender_KeepsSafeLinks(t *testing.T) {
	got := ugc.Render("[chap mới](https://example.com/ch1)")

	assert.Contains(t, got, `href="https://example.com/ch1"`)
	assert.Contains(t, got, "chap mới")
}

/*
TestSanitize_RawHTML asserts the plain sanitizer drops event handlers.
*/
func TestSanitize_RawHTML(t *testing.T) {
	got := ugc.Sanitize(`<p onclick="steal()">ok</p>`)

	assert.NotContains(t, got, "onclick")
	assert.Contains(t, got, "ok")
}
