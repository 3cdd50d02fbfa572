package ocr

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// EngineCheck probes the Tesseract installation before a run starts. It
// verifies the library answers at all and that the requested language is
// installed, wrapping any failure in ErrEngineUnavailable.
func EngineCheck(lang string) error {
	client := gosseract.NewClient()
	defer client.Close()
	if v := client.Version(); v == "" {
		return fmt.Errorf("%w: no version reported; install tesseract-ocr", ErrEngineUnavailable)
	}
	langs, err := client.GetAvailableLanguages()
	if err != nil {
		return fmt.Errorf("%w: list languages: %v", ErrEngineUnavailable, err)
	}
	for _, l := range langs {
		if l == lang {
			return nil
		}
	}
	return fmt.Errorf("%w: language %q not installed (have %v)", ErrEngineUnavailable, lang, langs)
}

// Recognize runs the full single-image OCR path: open, Preprocess, write the
// debug artifact into dataDir (skipped when dataDir is empty), hand a temp
// PNG to Tesseract, return the raw text. Empty text is not an error; it just
// means the parser will see nothing.
func Recognize(path, lang, dataDir string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	pre := Preprocess(img)

	if dataDir != "" {
		if p, err := SavePreprocessed(pre, dataDir, filepath.Base(path)); err != nil {
			log.Printf("WARN debug artifact for %s: %v", path, err)
		} else {
			log.Printf("saved preprocessed image to %s", p)
		}
	}

	tmpFile, err := os.CreateTemp("", "tooltip-*.png")
	tmp := path
	if err == nil {
		tmp = tmpFile.Name()
		_ = tmpFile.Close()
		if err := imaging.Save(pre, tmp); err != nil {
			tmp = path
		}
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(lang)
	client.SetImage(tmp)
	text, err := client.Text()
	if tmp != path {
		_ = os.Remove(tmp)
	}
	if err != nil {
		return "", fmt.Errorf("ocr error: %w", err)
	}
	log.Printf("OCR RAW %s snippet=%q", path, snippet(oneline(text), 180))
	return text, nil
}
