// Package media implements the 'chirpctl media' command group.
package media

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for media operations.
var Cmd = &cobra.Command{
	Use:   "media",
	Short: "Media uploads",
	Long: `Upload media files to the chirpd server.

Uploads are accepted immediately and written to the media store in the
background. The returned media ids can be attached to a tweet with
'chirpctl tweets post --media'.

Examples:
  # Upload a single image
  chirpctl media upload photo.jpg

  # Upload several files at once
  chirpctl media upload a.png b.png c.png`,
}

func init() {
	Cmd.AddCommand(uploadCmd)
}
