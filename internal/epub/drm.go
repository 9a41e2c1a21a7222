package epub

import (
	"encoding/xml"
	"strings"
)

const (
	encryptionFilePath = "META-INF/encryption.xml"

	// sinfFilePath only exists in Apple FairPlay protected books.
	sinfFilePath = "META-INF/sinf.xml"
)

// Font obfuscation is not DRM; chapter documents stay readable.
var fontObfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true,
	"http://ns.adobe.com/pdf/enc#RC":     true,
}

type encryptionXML struct {
	XMLName xml.Name `xml:"encryption"`
	Data    []struct {
		Method struct {
			Algorithm string `xml:"Algorithm,attr"`
		} `xml:"EncryptionMethod"`
	} `xml:"EncryptedData"`
}

// checkDRM reports whether the archive only uses font obfuscation, or
// returns ErrDRMProtected when any other resource is encrypted. An
// unparseable encryption.xml is treated as DRM.
func (b *Book) checkDRM() (fontObfuscation bool, err error) {
	if b.findFile(sinfFilePath) != nil {
		return false, ErrDRMProtected
	}
	f := b.findFile(encryptionFilePath)
	if f == nil {
		return false, nil
	}
	data, err := readZipFile(f)
	if err != nil {
		return false, err
	}

	var enc encryptionXML
	if err := xml.Unmarshal(stripBOM(data), &enc); err != nil {
		return false, ErrDRMProtected
	}
	for _, d := range enc.Data {
		algo := strings.TrimSpace(d.Method.Algorithm)
		if !fontObfuscationAlgorithms[algo] {
			return false, ErrDRMProtected
		}
		fontObfuscation = true
	}
	return fontObfuscation, nil
}
