package kaggle

// KernelTypeScript and KernelTypeNotebook are the two kernel shapes the
// harvester knows how to persist.
const (
	KernelTypeScript   = "script"
	KernelTypeNotebook = "notebook"
)

// Competition is one entry of the competitions listing
type Competition struct {
	Ref      string `json:"ref"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Kernel is one entry of a kernel listing. Ref has the form "author/slug".
type Kernel struct {
	Ref    string `json:"ref"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// KernelMetadata is the metadata record returned by a kernel pull
type KernelMetadata struct {
	Ref        string `json:"ref"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Slug       string `json:"slug"`
	Language   string `json:"language"`
	KernelType string `json:"kernelType"`
}

// KernelBlob is the content blob returned by a kernel pull. Source is a
// pointer so a listing with no source field is distinguishable from an empty
// one.
type KernelBlob struct {
	KernelType string  `json:"kernelType"`
	Language   string  `json:"language"`
	Slug       string  `json:"slug"`
	Source     *string `json:"source"`
}

// PullResponse is the payload of a kernel pull: the metadata record plus the
// source blob. Either part may be absent for malformed kernels.
type PullResponse struct {
	Metadata *KernelMetadata `json:"metadata"`
	Blob     *KernelBlob     `json:"blob"`
}
