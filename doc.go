// Package unoscan extracts utility CSS selectors from framework-generated source text.
//
// Components written for attribute-based utility styling emit two kinds of
// string literal that a utility-first CSS generator must see during its
// tree-shaking pass:
//
//	class: "flex items-center hover:bg-gray-100"
//	u_bg_color: "red-500 hover:red-600"
//
// The first is kept verbatim as a class list. The second is expanded into one
// attributify selector per value:
//
//	[u-bg-color~="red-500"]
//	[u-bg-color~="hover:red-600"]
//
// # Extraction
//
//	set := unoscan.Extract(source)
//	for _, sel := range set.Sorted() {
//		fmt.Println(sel)
//	}
//
// Extraction is a pure function of its input. It performs no I/O and keeps no
// state between calls, so an Extractor may be shared by any number of
// goroutines.
//
// # Variants
//
// Older config snapshots matched every quoted string as a class list and kept
// attribute values whole. Both behaviors remain reachable through Options:
//
//	ex := unoscan.New(unoscan.Options{
//		ClassMode:     unoscan.ClassUnscoped,
//		AttributeMode: unoscan.AttributeWhole,
//	})
//
// # CLI Tool
//
//	go install github.com/yacobolo/unoscan/cmd/unoscan@latest
package unoscan
