package extract

import (
	"bufio"
	"io"
	"os"

	"github.com/kirkpatrickprice/piidigger-go/internal/chunk"
	"github.com/kirkpatrickprice/piidigger-go/internal/logging"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxContentSize caps a chunk at maxChunkSize*chunkCount bytes, per
// spec.md §3 defaults (650 * 100_000 = ~65MB).
const (
	maxChunkSize = 650
	chunkCount   = 100_000
	maxContentSize = maxChunkSize * chunkCount
)

// plaintextExts/plaintextMimes are the extensions/MIMEs this extractor
// claims by default.
var plaintextExts = []string{
	".txt", ".csv", ".log", ".md", ".json", ".xml", ".yaml", ".yml",
	".ini", ".cfg", ".conf", ".sql", ".html", ".htm",
}

var plaintextMimes = []string{
	"text/plain", "text/csv", "text/markdown", "application/json",
	"application/xml", "text/xml", "text/html",
}

// PlaintextExtractor reads plain text files line by line, detecting the
// encoding with github.com/saintfish/chardet and decoding with
// golang.org/x/text/encoding before normalizing into chunks (spec.md
// §4.6 "Plaintext"). If the encoding cannot be determined, it emits
// nothing, per §4.6/§7 ("Unknown encoding: INFO-log and yield nothing").
type PlaintextExtractor struct{}

// NewPlaintextExtractor constructs a PlaintextExtractor.
func NewPlaintextExtractor() *PlaintextExtractor { return &PlaintextExtractor{} }

func (e *PlaintextExtractor) Handles() Handles {
	return Handles{Exts: plaintextExts, Mimes: plaintextMimes}
}

func (e *PlaintextExtractor) ReadFile(path string, logger *logging.Logger, yield func(chunk string) bool) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("plaintext: open %s: %v", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	dec, err := detectDecoder(f)
	if err != nil {
		logger.Info("plaintext: %s: %v", path, err)
		return
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logger.Error("plaintext: seek %s: %v", path, err)
		return
	}

	var reader io.Reader = f
	if dec != nil {
		reader = transform.NewReader(f, dec.NewDecoder())
	}

	handler := chunk.NewContentHandler(maxContentSize)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		handler.Append(scanner.Text())
		if handler.Full() {
			if !yield(handler.Drain()) {
				return
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("plaintext: read %s: %v", path, err)
	}
	if tail := handler.Finalize(); tail != "" {
		yield(tail)
	}
}

// detectDecoder sniffs up to 4KB with chardet and returns a matching
// golang.org/x/text encoding.Encoding, or nil for encodings that need no
// transformation (UTF-8/ASCII). Returns an error if chardet cannot
// determine a usable encoding.
func detectDecoder(f *os.File) (encoding.Encoding, error) {
	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return nil, err
	}
	buf = buf[:n]

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return nil, err
	}

	switch result.Charset {
	case "UTF-8", "ASCII":
		return nil, nil
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	case "windows-1252", "ISO-8859-1":
		return charmap.Windows1252, nil
	default:
		return nil, errUnknownEncoding(result.Charset)
	}
}

type errUnknownEncoding string

func (e errUnknownEncoding) Error() string { return "unknown encoding: " + string(e) }
