package models

// BucketPayload is the OSS bucket-creation request body.
type BucketPayload struct {
	BucketKey string `json:"bucketKey"`
	PolicyKey string `json:"policyKey"`
}

// ObjectDetails identifies a stored OSS object.
type ObjectDetails struct {
	ObjectKey string `json:"objectKey"`
	ObjectID  string `json:"objectId"`
	Size      int64  `json:"size,omitempty"`
}

// ObjectList is the paged object listing returned by OSS.
type ObjectList struct {
	Items []ObjectDetails `json:"items"`
}

// TranslateJob is the Model Derivative job submission payload.
type TranslateJob struct {
	Input  TranslateInput  `json:"input"`
	Output TranslateOutput `json:"output"`
}

// TranslateInput names the source object by URN.
type TranslateInput struct {
	URN string `json:"urn"`
}

// TranslateOutput lists the requested derivative formats.
type TranslateOutput struct {
	Formats []TranslateFormat `json:"formats"`
}

// TranslateFormat is a single requested derivative format.
type TranslateFormat struct {
	Type  string   `json:"type"`
	Views []string `json:"views"`
}

// Manifest is the job-status record returned by the Model Derivative service.
type Manifest struct {
	Status   string `json:"status"`
	Progress string `json:"progress"`
}

// FormatList maps derivative output types to the source extensions that
// can produce them.
type FormatList struct {
	Formats map[string][]string `json:"formats"`
}
