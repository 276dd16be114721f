package loader

import (
	"io"

	"github.com/Carmen-Shannon/prism/common"
)

// loaderBackend decodes one environment image format family into RGBA staging data.
type loaderBackend interface {
	// Load decodes the image at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if reading or decoding fails
	Load(path string) (*common.TextureStagingData, error)

	// LoadReader decodes an image from a stream.
	//
	// Parameters:
	//   - name: the name recorded on the result
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) (*common.TextureStagingData, error)
}
