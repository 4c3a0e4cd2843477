package backend

// App is a logical application managed by the backend.
type App struct {
	AppID   string `json:"app_id"`
	AppName string `json:"app_name"`
}

// Image references a built container image associated with a variant.
type Image struct {
	DockerID string `json:"docker_id"`
	Tags     string `json:"tags"`
}

// AppVariant is a named, independently deployable configuration of an app.
type AppVariant struct {
	AppID       string  `json:"app_id"`
	AppName     string  `json:"app_name"`
	VariantID   string  `json:"variant_id"`
	VariantName string  `json:"variant_name"`
	BaseName    *string `json:"base_name,omitempty"`
	ConfigName  *string `json:"config_name,omitempty"`
}

// Wire schemas, one explicit type per endpoint body/response so field names
// are checked at compile time instead of living in ad-hoc maps.

type createAppRequest struct {
	AppName string `json:"app_name"`
}

type appResponse struct {
	AppID string `json:"app_id"`
}

type addVariantRequest struct {
	VariantName string  `json:"variant_name"`
	DockerID    string  `json:"docker_id"`
	Tags        string  `json:"tags"`
	BaseName    *string `json:"base_name"`
	ConfigName  *string `json:"config_name"`
}

type envVarsPayload struct {
	EnvVars map[string]string `json:"env_vars"`
}

type variantActionRequest struct {
	Action  string          `json:"action"`
	EnvVars *envVarsPayload `json:"env_vars,omitempty"`
}

type variantActionResponse struct {
	URI string `json:"uri"`
}

type updateImageRequest struct {
	Image Image `json:"image"`
}
