// Package outlet writes release packages to a storage bucket and records
// where they went.
//
// A backend contributes a Connector that opens a Bucket. Backends are
// registered by name into a Registry built at startup:
//
//	reg := outlet.NewRegistry()
//	_ = s3.Register(reg)
//
//	out, err := outlet.New("s3", reg, &s3.Config{Bucket: "releases"}, outlet.Options{
//	    KeyPrefix: "dumps",
//	    Manifest:  manifest.New(),
//	}, log)
//	h, err := out.Create(ctx, base)
//	res, err := h.Write(ctx, releases)
//
// Write returns an error only when the package cannot be rendered. A failed
// upload is logged at fatal severity and reported through Result.Err so the
// caller decides whether to go on.
package outlet
