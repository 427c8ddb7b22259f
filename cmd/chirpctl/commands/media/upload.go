package media

import (
	"fmt"
	"path/filepath"

	"github.com/chirpnet/chirpd/cmd/chirpctl/cmdutil"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload media files",
	Long: `Upload one or more media files to the chirpd server.

Each upload returns a media id as soon as the server has recorded it.
The file content is written to the media store asynchronously, so a
returned id does not mean the bytes are on disk yet.

Examples:
  # Upload a photo and attach it to a tweet
  chirpctl media upload photo.jpg
  chirpctl tweets post "Look at this" --media 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	for _, path := range args {
		id, err := client.UploadMediaFile(path)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
		fmt.Printf("Uploaded %s (media id %d)\n", filepath.Base(path), id)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("%d file(s) uploaded", len(args)))
	return nil
}
