// Package auth builds the SFAPI Authorization header and loads credentials.
package auth

import (
	"net/url"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// BuildHeader returns the Authorization header value for auth, identifying
// this library build and the Go runtime.
func BuildHeader(auth sfapi.Authorization) string {
	return BuildHeaderWithVersions(auth, LibraryVersion(), runtime.Version())
}

// BuildHeaderWithVersions is BuildHeader with explicit versions. The parameter
// order email, apikey, company_id, module is fixed.
func BuildHeaderWithVersions(auth sfapi.Authorization, libraryVersion, runtimeVersion string) string {
	pairs := []string{
		"email=" + url.QueryEscape(auth.Email),
		"apikey=" + url.QueryEscape(auth.Key),
		"company_id=" + url.QueryEscape(strconv.Itoa(auth.CompanyID)),
		"module=" + url.QueryEscape(ModuleString(auth, libraryVersion, runtimeVersion)),
	}

	return constants.AuthorizationScheme + " " + strings.Join(pairs, "&")
}

// ModuleString formats "<module> [<app title>] (w/ SFAPI <version>) [<runtime>]".
func ModuleString(auth sfapi.Authorization, libraryVersion, runtimeVersion string) string {
	return auth.Module + " [" + auth.AppTitle + "] (w/ SFAPI " + libraryVersion + ") [" + runtimeVersion + "]"
}

// LibraryVersion reports the version of this module found in the build info,
// or "unknown".
func LibraryVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return constants.UnknownVersion
	}

	if info.Main.Path == constants.ModulePath {
		return versionOrUnknown(info.Main.Version)
	}

	for _, dep := range info.Deps {
		if dep.Path == constants.ModulePath {
			if dep.Replace != nil {
				return versionOrUnknown(dep.Replace.Version)
			}

			return versionOrUnknown(dep.Version)
		}
	}

	return constants.UnknownVersion
}

func versionOrUnknown(version string) string {
	if version == "" || version == "(devel)" {
		return constants.UnknownVersion
	}

	return version
}
