package metadata

// Defaults holds the fallback values and well-known locations used by the
// Assembler. It is passed by value so a request can never alter another's view.
type Defaults struct {
	// ConfigCandidates are the layout locations probed in order.
	ConfigCandidates []string
	// PublicDir is the asset directory served at the site root.
	PublicDir string
	// ImageCandidates are file names in PublicDir probed when the layout names no image.
	ImageCandidates []string
	// Image is used when no candidate exists; it is a guess, not a verified file.
	Image string

	Title       string
	Description string
	SiteURL     string
	ImageAlt    string
	ImageWidth  int
	ImageHeight int
	Favicon     string
}

// DefaultDefaults returns the stock values for a Next.js style site tree.
func DefaultDefaults() Defaults {
	return Defaults{
		ConfigCandidates: []string{"src/app/layout.tsx", "app/layout.tsx"},
		PublicDir:        "public",
		ImageCandidates:  []string{"og-img.png", "og-image.png"},
		Image:            "/og-img.png",
		Title:            "Start Page",
		Description:      "",
		SiteURL:          "https://yourdomain.com",
		ImageAlt:         "Start Page Preview",
		ImageWidth:       1200,
		ImageHeight:      630,
		Favicon:          "/favicon.png",
	}
}
