// Package assets holds the AssetStore implementations that back the site tree:
// local reads the working directory on disk, memory keeps files in a map for tests
// and development.
package assets
