package epub

import "errors"

var (
	// ErrDRMProtected is returned by Open and NewReader when META-INF holds
	// sinf.xml or encryption.xml names an algorithm other than font
	// obfuscation. Chapter text of such books cannot be read.
	ErrDRMProtected = errors.New("epub: file is DRM protected")

	// ErrInvalidEPub is returned by Open and NewReader when no package
	// document can be located, neither through container.xml nor by scanning
	// for an .opf entry.
	ErrInvalidEPub = errors.New("epub: invalid ePub file")

	// ErrFileNotFound is wrapped by ReadItem and returned by ReadFile when a
	// reference names no archive entry. A reference still carrying its
	// "#fragment" fails this way; callers may strip it and retry.
	ErrFileNotFound = errors.New("epub: file not found in archive")

	// ErrNoTOC marks a book without a usable navigation list. HasTOC reports
	// it after opening; the parse failure behind it is in Warnings.
	ErrNoTOC = errors.New("epub: no table of contents")
)
