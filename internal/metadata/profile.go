package metadata

import (
	"regexp"
	"strings"
)

// Rule locates one candidate value for a field.
//
// Group selects the capture group holding the value; zero means the first
// non-empty group, which lets a single pattern carry alternative attribute orders
// and quote styles. An Override rule replaces a value found by an earlier rule;
// other rules only fill a field that is still empty.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Group    int
	Override bool
}

// FieldRules is the ordered rule list for one field.
type FieldRules struct {
	Field Field
	Rules []Rule
}

// Profile is the rule table for one kind of source text. Profiles are built once
// at package init and must be treated as read-only.
type Profile struct {
	Name   string
	Fields []FieldRules
}

// Match applies the rule to text and returns the trimmed value of the first
// occurrence.
func (r Rule) Match(text string) (string, bool) {
	sub := r.Pattern.FindStringSubmatch(text)
	if sub == nil {
		return "", false
	}
	var value string
	if r.Group > 0 {
		if r.Group < len(sub) {
			value = sub[r.Group]
		}
	} else {
		for _, candidate := range sub[1:] {
			if candidate != "" {
				value = candidate
				break
			}
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Extract runs every field of the profile over text. Fields without a match are
// absent from the result.
func Extract(text string, p Profile) map[Field]string {
	out := make(map[Field]string, len(p.Fields))
	for _, fr := range p.Fields {
		found := false
		for _, rule := range fr.Rules {
			if found && !rule.Override {
				continue
			}
			if value, ok := rule.Match(text); ok {
				out[fr.Field] = value
				found = true
			}
		}
	}
	return out
}

// quoted captures a non-empty attribute value in double or single quotes.
const quoted = `(?:"([^"]+)"|'([^']+)')`

// metaRule matches <meta property|name="key" content="..."> in either attribute order.
func metaRule(key string, override bool) Rule {
	k := regexp.QuoteMeta(key)
	named := `(?:property|name)\s*=\s*["']` + k + `["']`
	content := `content\s*=\s*` + quoted
	pattern := `(?is)<meta\s+(?:[^>]*?\s)?` + named + `[^>]*?\s` + content +
		`|<meta\s+(?:[^>]*?\s)?` + content + `[^>]*?\s` + named
	return Rule{Name: key, Pattern: regexp.MustCompile(pattern), Override: override}
}

func iconLinkRule() Rule {
	rel := `rel\s*=\s*["'](?:shortcut\s+)?icon["']`
	href := `href\s*=\s*` + quoted
	pattern := `(?is)<link\s+(?:[^>]*?\s)?` + rel + `[^>]*?\s` + href +
		`|<link\s+(?:[^>]*?\s)?` + href + `[^>]*?\s` + rel
	return Rule{Name: "link[rel=icon]", Pattern: regexp.MustCompile(pattern)}
}

func literalRule(name, pattern string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Group: 1}
}

// ExternalHTMLProfile reads Open Graph, Twitter and standard HTML tags from a page.
var ExternalHTMLProfile = Profile{
	Name: "external-html",
	Fields: []FieldRules{
		{Field: FieldTitle, Rules: []Rule{
			{Name: "title", Pattern: regexp.MustCompile(`(?is)<title(?:\s[^>]*)?>([^<]+)</title>`), Group: 1},
			metaRule("og:title", true),
		}},
		{Field: FieldDescription, Rules: []Rule{
			metaRule("description", false),
			metaRule("og:description", true),
		}},
		{Field: FieldImage, Rules: []Rule{
			metaRule("og:image", false),
			metaRule("twitter:image", false),
		}},
		{Field: FieldFavicon, Rules: []Rule{
			iconLinkRule(),
		}},
	},
}

// LocalConfigProfile reads literal assignments from the site's layout source.
var LocalConfigProfile = Profile{
	Name: "local-config",
	Fields: []FieldRules{
		{Field: FieldSiteURL, Rules: []Rule{
			literalRule("const siteUrl", `const\s+siteUrl\s*=\s*['"]([^'"]+)['"]`),
		}},
		{Field: FieldTitle, Rules: []Rule{
			literalRule("title", `title:\s*['"]([^'"]+)['"]`),
		}},
		{Field: FieldDescription, Rules: []Rule{
			literalRule("description", `description:\s*['"]([^'"]+)['"]`),
		}},
		{Field: FieldImage, Rules: []Rule{
			literalRule("images.url", "url:\\s*`\\$\\{siteUrl\\}([^`]+)`"),
		}},
		{Field: FieldImageWidth, Rules: []Rule{
			literalRule("width", `width:\s*(\d+)`),
		}},
		{Field: FieldImageHeight, Rules: []Rule{
			literalRule("height", `height:\s*(\d+)`),
		}},
		{Field: FieldImageAlt, Rules: []Rule{
			literalRule("alt", `alt:\s*['"]([^'"]+)['"]`),
		}},
		{Field: FieldVideo, Rules: []Rule{
			literalRule("videos.url", `videos:\s*\[\s*\{\s*url:\s*['"]([^'"]+)['"]`),
			literalRule("videos.url template", "videos:\\s*\\[\\s*\\{\\s*url:\\s*`\\$\\{siteUrl\\}([^`]+)`"),
			literalRule("videos", `videos:\s*\[\s*['"]([^'"]+)['"]`),
		}},
		{Field: FieldFavicon, Rules: []Rule{
			literalRule("icon", `icon:\s*['"]([^'"]+)['"]`),
			literalRule("icon.url", `icon:\s*\[\s*\{\s*url:\s*['"]([^'"]+)['"]`),
		}},
	},
}
