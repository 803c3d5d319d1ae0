package constants_test

import (
	"fmt"

	"github.com/agentstation/genaicheck/pkg/constants"
)

// Example demonstrates the default environment variables dumped by the diagnostic.
func Example() {
	for _, name := range constants.DefaultEnvVars {
		fmt.Println(name)
	}
	// Output:
	// GOOGLE_GENAI_USE_VERTEXAI
	// GOOGLE_CLOUD_PROJECT
	// GOOGLE_CLOUD_LOCATION
	// GOOGLE_APPLICATION_CREDENTIALS
	// GOOGLE_API_KEY
}

// Example_defaults demonstrates fallback values.
func Example_defaults() {
	fmt.Println(constants.DefaultLocation)
	fmt.Println(constants.UnknownMethods)
	// Output:
	// us-west2
	// ?
}
