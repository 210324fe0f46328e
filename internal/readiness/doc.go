// Package readiness evaluates deployment preconditions and reports whether a
// project is ready to deploy.
//
// A checklist is an ordered list of RequirementItem values, each asking
// either that a path exists or that a module can be imported. Every item is
// evaluated even when earlier ones fail, so the operator sees all problems
// at once; the report passes only when every item passed.
//
//	checker := readiness.New(readiness.WithLoader("python", loader.NewPython()))
//	report := checker.Run(ctx, []readiness.RequirementItem{
//	    readiness.FileExists("Dockerfile"),
//	    readiness.ModuleImportable("backend.config_cloud"),
//	})
//	readiness.PrintReport(os.Stdout, report, readiness.PrintOptions{})
//	if !report.Passed() {
//	    os.Exit(1)
//	}
package readiness
