package photo

import "strings"

// ObjectURL renders a public access URL for an object from a template with
// {bucket} and {key} placeholders. Returns "" when no template is configured;
// callers omit the URL field in that case rather than inventing a placeholder.
func ObjectURL(template, bucket, objectKey string) string {
	if template == "" {
		return ""
	}
	r := strings.NewReplacer("{bucket}", bucket, "{key}", objectKey)
	return r.Replace(template)
}
