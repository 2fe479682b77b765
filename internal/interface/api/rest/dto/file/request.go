package file

type (
	TagRequest struct {
		Tag string `json:"tag"`
	}
	EditTagRequest struct {
		OldTag string `json:"oldTag"`
		NewTag string `json:"newTag"`
	}
)
