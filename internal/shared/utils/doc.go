// Package utils provides field validation shared by profile loading.
package utils
