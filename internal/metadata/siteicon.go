package metadata

import (
	"context"
	"fmt"
	"path"
)

// Icon is a favicon file served from the site tree.
type Icon struct {
	Path        string
	ContentType string
	Data        []byte
}

// SiteIcon returns the icon served at /favicon.ico: public/favicon.ico, then an
// icon.svg next to a layout candidate, then public/favicon.png. The boolean is
// false when none exists.
func (a *Assembler) SiteIcon(ctx context.Context) (Icon, bool, error) {
	d := a.defaults
	candidates := []Icon{{Path: path.Join(d.PublicDir, "favicon.ico"), ContentType: "image/x-icon"}}
	seen := map[string]bool{}
	for _, cfg := range d.ConfigCandidates {
		dir := path.Dir(cfg)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		candidates = append(candidates, Icon{Path: path.Join(dir, "icon.svg"), ContentType: "image/svg+xml"})
	}
	candidates = append(candidates, Icon{Path: path.Join(d.PublicDir, "favicon.png"), ContentType: "image/png"})

	for _, icon := range candidates {
		if !a.assets.Exists(ctx, icon.Path) {
			continue
		}
		data, err := a.assets.Read(ctx, icon.Path)
		if err != nil {
			return Icon{}, false, fmt.Errorf("read %s: %w", icon.Path, err)
		}
		icon.Data = data
		return icon, true, nil
	}
	return Icon{}, false, nil
}
