package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractExternalTitle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		html string
		want string
		ok   bool
	}{
		{"title only", `<html><head><title>  Plain Title </title></head></html>`, "Plain Title", true},
		{"og title wins", `<title>Plain</title><meta property="og:title" content="OG Title">`, "OG Title", true},
		{"og title before title still wins", `<meta property="og:title" content="OG"><title>Plain</title>`, "OG", true},
		{"content before property", `<title>Plain</title><meta content="Reversed" property="og:title" />`, "Reversed", true},
		{"upper case tags", `<TITLE>Shout</TITLE><META PROPERTY="OG:TITLE" CONTENT="Loud">`, "Loud", true},
		{"single quotes keep apostrophes apart", `<meta property='og:title' content='Say "hi"'>`, `Say "hi"`, true},
		{"double quotes allow apostrophe", `<meta property="og:title" content="Bob's Page">`, "Bob's Page", true},
		{"first occurrence wins", `<meta property="og:title" content="First"><meta property="og:title" content="Second">`, "First", true},
		{"title attributes tolerated", `<title data-rh="true">Attr</title>`, "Attr", true},
		{"multiline title", "<title>\n  Line\n</title>", "Line", true},
		{"empty og falls back to title", `<title>Plain</title><meta property="og:title" content="">`, "Plain", true},
		{"nothing", `<html></html>`, "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fields := Extract(tc.html, ExternalHTMLProfile)
			got, ok := fields[FieldTitle]
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractExternalDescription(t *testing.T) {
	t.Parallel()

	html := `<meta name="description" content="Generic"><meta property="og:description" content="Social">`
	assert.Equal(t, "Social", Extract(html, ExternalHTMLProfile)[FieldDescription])

	html = `<meta name="Description" content=" Generic only ">`
	assert.Equal(t, "Generic only", Extract(html, ExternalHTMLProfile)[FieldDescription])

	html = `<meta name="description:extra" content="nope">`
	_, ok := Extract(html, ExternalHTMLProfile)[FieldDescription]
	assert.False(t, ok)
}

func TestExtractExternalImage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		html string
		want string
	}{
		{"og image", `<meta property="og:image" content="/og.png">`, "/og.png"},
		{"twitter fallback", `<meta name="twitter:image" content="/tw.png">`, "/tw.png"},
		{"og preferred over twitter", `<meta name="twitter:image" content="/tw.png"><meta property="og:image" content="/og.png">`, "/og.png"},
		{"og image width ignored", `<meta property="og:image:width" content="1200"><meta property="og:image" content="/og.png">`, "/og.png"},
		{"extra attributes", `<meta data-x="1" property="og:image" itemprop="image" content="https://cdn/x.png">`, "https://cdn/x.png"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Extract(tc.html, ExternalHTMLProfile)[FieldImage])
		})
	}
}

func TestExtractExternalFavicon(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		html string
		want string
	}{
		{"icon", `<link rel="icon" href="/favicon.svg">`, "/favicon.svg"},
		{"shortcut icon", `<link rel="shortcut icon" href="/favicon.ico">`, "/favicon.ico"},
		{"href first", `<link href="/i.png" rel="icon" type="image/png">`, "/i.png"},
		{"with type between", `<link rel="icon" type="image/png" href="icon.png">`, "icon.png"},
		{"apple touch icon ignored", `<link rel="apple-touch-icon" href="/apple.png">`, ""},
		{"stylesheet ignored", `<link rel="stylesheet" href="/a.css">`, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Extract(tc.html, ExternalHTMLProfile)[FieldFavicon])
		})
	}
}

const layoutFixture = "import type { Metadata } from \"next\";\n" +
	"const siteUrl = 'https://start.example.com';\n" +
	"export const metadata: Metadata = {\n" +
	"  title: 'My Start Page',\n" +
	"  description: \"Links I use\",\n" +
	"  icons: { icon: '/custom\\\\.ico' },\n" +
	"  openGraph: {\n" +
	"    images: [{ url: `${siteUrl}/og\\\\.png`, width: 800, height: 400, alt: 'Card' }],\n" +
	"    videos: [{ url: '/intro.mp4' }],\n" +
	"  },\n" +
	"};\n"

func TestExtractLocalConfig(t *testing.T) {
	t.Parallel()

	fields := Extract(layoutFixture, LocalConfigProfile)
	assert.Equal(t, map[Field]string{
		FieldSiteURL:     "https://start.example.com",
		FieldTitle:       "My Start Page",
		FieldDescription: "Links I use",
		FieldImage:       `/og\\.png`,
		FieldImageWidth:  "800",
		FieldImageHeight: "400",
		FieldImageAlt:    "Card",
		FieldVideo:       "/intro.mp4",
		FieldFavicon:     `/custom\\.ico`,
	}, fields)
}

func TestExtractLocalIconArray(t *testing.T) {
	t.Parallel()

	fields := Extract(`icons: { icon: [ { url: "/arr.png" } ] }`, LocalConfigProfile)
	assert.Equal(t, "/arr.png", fields[FieldFavicon])
}

func TestRuleGroupSelection(t *testing.T) {
	t.Parallel()

	rule := literalRule("width", `width:\s*(\d+)`)
	got, ok := rule.Match("height: 2, width: 640")
	assert.True(t, ok)
	assert.Equal(t, "640", got)

	rule.Group = 5
	_, ok = rule.Match("width: 640")
	assert.False(t, ok, "out of range group never matches")
}
