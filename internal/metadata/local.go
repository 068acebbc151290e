package metadata

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// probe is one step of a priority chain: when path exists in the asset store (or
// path is empty) the chain resolves to value.
type probe struct {
	path  string
	value string
}

func (a *Assembler) firstAvailable(ctx context.Context, probes []probe) (probe, bool) {
	for _, p := range probes {
		if p.path == "" || a.assets.Exists(ctx, p.path) {
			return p, true
		}
	}
	return probe{}, false
}

// Local extracts metadata from the site's own layout source. The first existing
// entry of Defaults.ConfigCandidates is used; ErrConfigNotFound is returned when
// none exists. Every field of the returned Record is set.
func (a *Assembler) Local(ctx context.Context) (Record, error) {
	d := a.defaults

	configPath, ok := a.locateConfig(ctx)
	if !ok {
		return Record{}, fmt.Errorf("%w in %s", ErrConfigNotFound, strings.Join(d.ConfigCandidates, ", "))
	}
	raw, err := a.assets.Read(ctx, configPath)
	if err != nil {
		return Record{}, fmt.Errorf("read %s: %w", configPath, err)
	}

	fields := Extract(string(raw), LocalConfigProfile)

	siteURL := stringOr(fields[FieldSiteURL], d.SiteURL)
	origin := siteOrigin(siteURL, d.SiteURL)

	image, ok := fields[FieldImage]
	if !ok {
		image = a.probeImage(ctx)
	}
	image = CleanEscapes(image)
	favicon := CleanEscapes(a.resolveFavicon(ctx, configPath, fields))

	rec := Record{
		Title:       strPtr(stringOr(fields[FieldTitle], d.Title)),
		Description: strPtr(stringOr(fields[FieldDescription], d.Description)),
		SiteURL:     strPtr(siteURL),
		Image:       strPtr(Absolutize(image, origin)),
		ImageWidth:  intPtr(intOr(fields[FieldImageWidth], d.ImageWidth)),
		ImageHeight: intPtr(intOr(fields[FieldImageHeight], d.ImageHeight)),
		ImageAlt:    strPtr(stringOr(fields[FieldImageAlt], d.ImageAlt)),
		Favicon:     strPtr(Absolutize(favicon, origin)),
	}
	if video, ok := fields[FieldVideo]; ok {
		rec.Video = strPtr(Absolutize(CleanEscapes(video), origin))
	}

	a.logger.Debug("local metadata assembled",
		zap.String("config", configPath),
		zap.String("image", *rec.Image),
		zap.String("favicon", *rec.Favicon),
	)
	return rec, nil
}

func (a *Assembler) locateConfig(ctx context.Context) (string, bool) {
	probes := make([]probe, 0, len(a.defaults.ConfigCandidates))
	for _, candidate := range a.defaults.ConfigCandidates {
		probes = append(probes, probe{path: candidate, value: candidate})
	}
	p, ok := a.firstAvailable(ctx, probes)
	return p.value, ok
}

// probeImage picks the first default preview image present in the public
// directory, falling back to Defaults.Image even if that file does not exist.
func (a *Assembler) probeImage(ctx context.Context) string {
	d := a.defaults
	probes := make([]probe, 0, len(d.ImageCandidates)+1)
	for _, name := range d.ImageCandidates {
		probes = append(probes, probe{path: path.Join(d.PublicDir, name), value: "/" + name})
	}
	probes = append(probes, probe{value: d.Image})
	p, _ := a.firstAvailable(ctx, probes)
	return p.value
}

// faviconChain lists favicon sources from strongest to weakest: the icon
// convention in the layout's own directory (svg before png), the same convention
// in the other layout directories, a favicon in the public directory, an icon
// named in the layout text, then the default.
func (a *Assembler) faviconChain(configPath string, fields map[Field]string) []probe {
	d := a.defaults
	dirs := []string{path.Dir(configPath)}
	for _, candidate := range d.ConfigCandidates {
		dir := path.Dir(candidate)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	probes := make([]probe, 0, 2*len(dirs)+4)
	for _, dir := range dirs {
		probes = append(probes,
			probe{path: path.Join(dir, "icon.svg"), value: "/icon.svg"},
			probe{path: path.Join(dir, "icon.png"), value: "/icon.png"},
		)
	}
	probes = append(probes,
		probe{path: path.Join(d.PublicDir, "favicon.png"), value: "/favicon.png"},
		probe{path: path.Join(d.PublicDir, "favicon.svg"), value: "/favicon.svg"},
	)
	if icon, ok := fields[FieldFavicon]; ok {
		probes = append(probes, probe{value: icon})
	}
	return append(probes, probe{value: d.Favicon})
}

func (a *Assembler) resolveFavicon(ctx context.Context, configPath string, fields map[Field]string) string {
	p, _ := a.firstAvailable(ctx, a.faviconChain(configPath, fields))
	return p.value
}

// siteOrigin derives the absolutization origin from the layout's siteUrl,
// falling back to the configured default when siteUrl is not an absolute URL.
func siteOrigin(siteURL, fallback string) Origin {
	for _, candidate := range []string{siteURL, fallback} {
		u, err := url.Parse(candidate)
		if err == nil && u.Scheme != "" && u.Host != "" {
			return OriginOf(u)
		}
	}
	return Origin{Scheme: "https", Host: "localhost"}
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
