package diag

import (
	"github.com/agentstation/genaicheck/pkg/constants"
)

// Value sources recorded on a Scope.
const (
	SourceFlag        = "flag"
	SourceEnv         = "env"
	SourceCredentials = "credentials"
	SourceDefault     = "default"
)

// Scope is the project and location the catalog is queried for.
type Scope struct {
	Project        string `yaml:"project"`
	Location       string `yaml:"location"`
	ProjectSource  string `yaml:"project_source"`
	LocationSource string `yaml:"location_source"`
}

// ResolveScope picks the project and location.
//
// Project: explicit, then $GOOGLE_CLOUD_PROJECT, then the inferred project.
// Location: explicit, then $GOOGLE_CLOUD_LOCATION, then us-west2.
// ok is false when no project could be determined.
func ResolveScope(explicitProject, explicitLocation, inferredProject string, lookup LookupFunc) (scope Scope, ok bool) {
	switch {
	case explicitProject != "":
		scope.Project, scope.ProjectSource = explicitProject, SourceFlag
	case lookupNonEmpty(lookup, constants.EnvCloudProject) != "":
		scope.Project, scope.ProjectSource = lookupNonEmpty(lookup, constants.EnvCloudProject), SourceEnv
	case inferredProject != "":
		scope.Project, scope.ProjectSource = inferredProject, SourceCredentials
	}

	switch {
	case explicitLocation != "":
		scope.Location, scope.LocationSource = explicitLocation, SourceFlag
	case lookupNonEmpty(lookup, constants.EnvCloudLocation) != "":
		scope.Location, scope.LocationSource = lookupNonEmpty(lookup, constants.EnvCloudLocation), SourceEnv
	default:
		scope.Location, scope.LocationSource = constants.DefaultLocation, SourceDefault
	}

	return scope, scope.Project != ""
}

func lookupNonEmpty(lookup LookupFunc, name string) string {
	if lookup == nil {
		return ""
	}
	value, _ := lookup(name)
	return value
}
