package types

// Category represents the component family serving an operation
type Category string

const (
	CategoryInventory Category = "inventory"
	CategoryLaunch    Category = "launch"
	CategoryDevice    Category = "device"
)

// Parameter types understood by argument validation
const (
	ParamString  = "string"
	ParamInteger = "integer"
	ParamBoolean = "boolean"
)

// Service represents a component definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents one operation reachable on the channel.
// ID is the operation name the caller sends.
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a named tool argument
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}
