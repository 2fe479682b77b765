package file

import (
	domainFile "file-storage-api/internal/domain/file"
	domainUser "file-storage-api/internal/domain/user"
)

func fromDBModel(model *File) *domainFile.File {
	var f = &domainFile.File{
		UUID:    model.UUID,
		OwnerID: (*domainUser.ID)(model.OwnerID),

		StoredName:      model.StoredName,
		OriginalName:    model.OriginalName,
		MimeType:        model.MimeType,
		SizeBytes:       model.SizeBytes,
		LocationPointer: model.LocationPointer,
		DownloadURL:     model.DownloadURL,
		Tags:            model.Tags,

		UploadedAt: model.UploadedAt,
	}

	return f
}

func fromDBModels(models *Files) domainFile.Files {
	fs := make(domainFile.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
