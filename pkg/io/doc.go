// Package io provides JSON import and export for extraction results.
//
// # Overview
//
// A [Document] bundles everything needed to render a poster later:
// the brand and model names, the catalog page the data came from, and
// the specification fields themselves. The format is designed for:
//
//   - Saving an extraction run with `specs --save` and rendering it
//     offline with `render`
//   - Hand-editing values before rendering
//   - Feeding data from other tools into the poster renderer
//
// # JSON Format
//
//	{
//	  "brand": "Audi",
//	  "model": "TT RS",
//	  "page_url": "https://www.automobile-catalog.com/model/audi/tt_rs.html",
//	  "specs": {
//	    "year": "2016-2023",
//	    "engine": "2.5L TFSI",
//	    "power": "394 HP",
//	    "torque": "480 Nm",
//	    "weight": "1450 kg",
//	    "acceleration_0_100": "3.7 s",
//	    "top_speed": "250 km/h",
//	    "image_url": "https://..."
//	  }
//	}
//
// brand and model are required; everything else may be omitted. Empty
// spec fields render as "n/a" on the poster.
//
// # Round-Trip
//
// [WriteJSON] and [ReadJSON] are inverses: a document written and
// re-read compares equal. Unknown JSON keys are ignored on read so
// documents from newer versions still load.
package io
