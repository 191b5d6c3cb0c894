// Package api defines the request and response messages of the dahira.v1
// services. Messages travel as JSON; validate tags are checked server side.
package api
