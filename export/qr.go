package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/gplocal"
	qrcode "github.com/skip2/go-qrcode"
)

// QRSize is the width and height in pixels of the QR code image.
const QRSize = 240

// QR writes doc, as compact JSON, encoded in a PNG QR code image.
// It fails when the document is too large to fit in a QR code.
func QR(w io.Writer, doc gplocal.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(data), qrcode.Low, QRSize)
	if err != nil {
		return fmt.Errorf("cannot encode a %d bytes document in a QR code: %w", len(data), err)
	}
	_, err = w.Write(png)
	return err
}
