package dto

type Field struct {
	Key   string
	Value string
}

type SettingsOutput struct {
	Path   string
	Fields []Field
}

type SetInput struct {
	Key   string
	Value string
}
