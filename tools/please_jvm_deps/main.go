// Package main implements please_jvm_deps, a tool that merges one or more
// decoded JVM-dependency manifests into a single canonical Model and prints
// its rendered form.
//
// Decoding manifest text into a jvmdeps.Model is an external collaborator's
// job: this binary only wires the merge engine together with flag parsing
// and logging, consuming already-decoded Models via the ManifestDecoder seam.
package main

import (
	"fmt"
	"os"

	"github.com/coreos/go-semver/semver"
	"gopkg.in/op/go-logging.v1"

	"github.com/thought-machine/please-jvm-deps/src/cli"
	"github.com/thought-machine/please-jvm-deps/tools/please_jvm_deps/jvmdeps"
)

var log = logging.MustGetLogger("please_jvm_deps")

// toolVersion is this build's own semantic version, compared against
// --require_version the way core/config.go's Version field compares a
// repo's required plz version against the running binary.
const toolVersion = "1.0.0"

var opts = struct {
	Usage           string
	Verbosity       cli.Verbosity `short:"v" long:"verbosity" default:"warning" description:"Verbosity of output (higher number = more output)"`
	MaxManifestSize cli.ByteSize  `long:"max_manifest_size" default:"10M" description:"Reject any manifest file larger than this before decoding"`
	RequireVersion  cli.Version   `long:"require_version" description:"Warn if this binary's version differs from the given version (or, with a >= prefix, is older than it)"`
	Args            struct {
		Manifests []string `positional-arg-name:"manifests" required:"yes" description:"Manifest files to merge, in order"`
	} `positional-args:"yes" required:"yes"`
}{
	Usage: `
please_jvm_deps merges one or more JVM-dependency manifests into a single
canonical model and prints its rendered form.

Example usage:
please_jvm_deps 3rdparty/jvm/dependencies.yaml 3rdparty/jvm/overrides.yaml

Manifests are combined left-to-right: differing versions of one artifact
are resolved under the combined (strictest) policy, later files override
the third-party directory and build header, and the fold aborts at the
first manifest pair that can't be reconciled.
`,
}

// ManifestDecoder decodes manifest file contents into a jvmdeps.Model. This
// is the seam the external parser collaborator fills in; YAML parsing
// itself is out of scope for this core.
var ManifestDecoder func(path string, data []byte) (jvmdeps.Model, error)

// checkRequireVersion warns if the running binary doesn't satisfy
// --require_version; it never aborts the merge over this, matching how
// core/config.go's Version field treats a mismatched plz version as a
// warning rather than a hard failure.
func checkRequireVersion() {
	var zero semver.Version
	required := opts.RequireVersion.Semver()
	if required == zero {
		return
	}
	running := semver.New(toolVersion)
	if opts.RequireVersion.IsGTE {
		if running.LessThan(required) {
			log.Warning("please_jvm_deps %s is older than the required %s", toolVersion, opts.RequireVersion.VersionString())
		}
		return
	}
	if running.Compare(required) != 0 {
		log.Warning("please_jvm_deps %s does not match the required version %s", toolVersion, opts.RequireVersion.VersionString())
	}
}

func readManifest(path string) jvmdeps.Model {
	info, err := os.Stat(path)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if uint64(info.Size()) > uint64(opts.MaxManifestSize) {
		log.Fatalf("%s exceeds --max_manifest_size", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("%s", err)
	}
	if ManifestDecoder == nil {
		log.Fatalf("no ManifestDecoder wired in; this binary only merges already-decoded models")
	}
	model, err := ManifestDecoder(path, data)
	if err != nil {
		log.Fatalf("decoding %s: %s", path, err)
	}
	log.Debug("read manifest %s (%d bytes)", path, len(data))
	return model
}

func main() {
	cli.ParseFlagsOrDie("please_jvm_deps", toolVersion, &opts)
	cli.InitLogging(opts.Verbosity)
	checkRequireVersion()

	models := make([]jvmdeps.Model, len(opts.Args.Manifests))
	for i, path := range opts.Args.Manifests {
		models[i] = readManifest(path)
	}

	merged, err := jvmdeps.CombineAll(models...)
	if err != nil {
		log.Fatalf("%s", err)
	}
	fmt.Println(merged.Render())
}
