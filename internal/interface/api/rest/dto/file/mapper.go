package file

import (
	domain "file-storage-api/internal/domain/file"
)

func ToResponseFile(fDomain domain.File) File {
	tags := fDomain.Tags
	if tags == nil {
		tags = []string{}
	}

	var f = File{
		ID:         fDomain.UUID,
		Name:       fDomain.OriginalName,
		Type:       fDomain.MimeType,
		Size:       fDomain.SizeBytes,
		UploadDate: fDomain.UploadedAt,
		URL:        fDomain.DownloadURL,
		Tags:       tags,
	}

	return f
}

func ToResponseFiles(fsDomain domain.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
