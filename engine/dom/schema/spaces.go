package schema

import "strings"

func xmlSpace() space {
	return space{
		name:       SpaceXML,
		properties: map[string]mask{"xmlLang": 0, "xmlBase": 0, "xmlSpace": 0},
		transform:  prefixTransform("xml:", 3),
	}
}

func xlinkSpace() space {
	return space{
		name: SpaceXLink,
		properties: map[string]mask{
			"xlinkActuate": 0, "xlinkArcRole": 0, "xlinkHref": 0, "xlinkRole": 0,
			"xlinkShow": 0, "xlinkTitle": 0, "xlinkType": 0,
		},
		transform: prefixTransform("xlink:", 5),
	}
}

func xmlnsSpace() space {
	return space{
		name:       SpaceXMLNS,
		properties: map[string]mask{"xmlns": 0, "xmlnsXLink": 0},
		attributes: map[string]string{"xmlnsxlink": "xmlns:xlink"},
		transform:  caseInsensitiveTransform,
	}
}

func ariaSpace() space {
	return space{
		properties: map[string]mask{
			"ariaActiveDescendant": 0, "ariaAtomic": booleanish, "ariaAutoComplete": 0,
			"ariaBusy": booleanish, "ariaChecked": booleanish, "ariaColCount": number,
			"ariaColIndex": number, "ariaColSpan": number, "ariaControls": spaceSeparated,
			"ariaCurrent": 0, "ariaDescribedBy": spaceSeparated, "ariaDetails": 0,
			"ariaDisabled": booleanish, "ariaDropEffect": spaceSeparated,
			"ariaErrorMessage": 0, "ariaExpanded": booleanish, "ariaFlowTo": spaceSeparated,
			"ariaGrabbed": booleanish, "ariaHasPopup": 0, "ariaHidden": booleanish,
			"ariaInvalid": 0, "ariaKeyShortcuts": 0, "ariaLabel": 0,
			"ariaLabelledBy": spaceSeparated, "ariaLevel": number, "ariaLive": 0,
			"ariaModal": booleanish, "ariaMultiLine": booleanish,
			"ariaMultiSelectable": booleanish, "ariaOrientation": 0,
			"ariaOwns": spaceSeparated, "ariaPlaceholder": 0, "ariaPosInSet": number,
			"ariaPressed": booleanish, "ariaReadOnly": booleanish, "ariaRelevant": 0,
			"ariaRequired": booleanish, "ariaRoleDescription": spaceSeparated,
			"ariaRowCount": number, "ariaRowIndex": number, "ariaRowSpan": number,
			"ariaSelected": booleanish, "ariaSetSize": number, "ariaSort": 0,
			"ariaValueMax": number, "ariaValueMin": number, "ariaValueNow": number,
			"ariaValueText": 0, "role": 0,
		},
		transform: func(_ map[string]string, property string) string {
			if property == "role" {
				return property
			}
			return "aria-" + strings.ToLower(property[4:])
		},
	}
}

func htmlSpace() space {
	return space{
		name: SpaceHTML,
		attributes: map[string]string{
			"acceptcharset": "accept-charset",
			"classname":     "class",
			"htmlfor":       "for",
			"httpequiv":     "http-equiv",
		},
		transform: caseInsensitiveTransform,
		properties: map[string]mask{
			"abbr": 0, "accept": commaSeparated, "acceptCharset": spaceSeparated,
			"accessKey": spaceSeparated, "action": 0, "allow": 0,
			"allowFullScreen": boolean, "allowPaymentRequest": boolean,
			"allowUserMedia": boolean, "alt": 0, "as": 0, "async": boolean,
			"autoCapitalize": 0, "autoComplete": spaceSeparated, "autoFocus": boolean,
			"autoPlay": boolean, "blocking": spaceSeparated, "capture": 0, "charSet": 0,
			"checked": boolean, "cite": 0, "className": spaceSeparated, "cols": number,
			"colSpan": 0, "content": 0, "contentEditable": booleanish, "controls": boolean,
			"controlsList": spaceSeparated, "coords": number | commaSeparated,
			"crossOrigin": 0, "data": 0, "dateTime": 0, "decoding": 0, "default": boolean,
			"defer": boolean, "dir": 0, "dirName": 0, "disabled": boolean,
			"download": overloadedBoolean, "draggable": booleanish, "encType": 0,
			"enterKeyHint": 0, "fetchPriority": 0, "form": 0, "formAction": 0,
			"formEncType": 0, "formMethod": 0, "formNoValidate": boolean, "formTarget": 0,
			"headers": spaceSeparated, "height": number, "hidden": boolean, "high": number,
			"href": 0, "hrefLang": 0, "htmlFor": spaceSeparated, "httpEquiv": spaceSeparated,
			"id": 0, "imageSizes": 0, "imageSrcSet": 0, "inert": boolean, "inputMode": 0,
			"integrity": 0, "is": 0, "isMap": boolean, "itemId": 0,
			"itemProp": spaceSeparated, "itemRef": spaceSeparated, "itemScope": boolean,
			"itemType": spaceSeparated, "kind": 0, "label": 0, "lang": 0, "language": 0,
			"list": 0, "loading": 0, "loop": boolean, "low": number, "manifest": 0,
			"max": 0, "maxLength": number, "media": 0, "method": 0, "min": 0,
			"minLength": number, "multiple": boolean, "muted": boolean, "name": 0,
			"nonce": 0, "noModule": boolean, "noValidate": boolean, "open": boolean,
			"optimum": number, "pattern": 0, "ping": spaceSeparated, "placeholder": 0,
			"playsInline": boolean, "popover": 0, "popoverTarget": 0,
			"popoverTargetAction": 0, "poster": 0, "preload": 0, "readOnly": boolean,
			"referrerPolicy": 0, "rel": spaceSeparated, "required": boolean,
			"reversed": boolean, "rows": number, "rowSpan": number,
			"sandbox": spaceSeparated, "scope": 0, "scoped": boolean, "seamless": boolean,
			"selected": boolean, "shape": 0, "size": number, "sizes": 0, "slot": 0,
			"span": number, "spellCheck": booleanish, "src": 0, "srcDoc": 0, "srcLang": 0,
			"srcSet": 0, "start": number, "step": 0, "style": 0, "tabIndex": number,
			"target": 0, "title": 0, "translate": 0, "type": 0, "typeMustMatch": boolean,
			"useMap": 0, "value": booleanish, "width": number, "wrap": 0,
			// legacy
			"align": 0, "aLink": 0, "archive": spaceSeparated, "axis": 0,
			"background": 0, "bgColor": 0, "border": number, "borderColor": 0,
			"bottomMargin": number, "cellPadding": 0, "cellSpacing": 0, "char": 0,
			"charOff": 0, "classId": 0, "clear": 0, "code": 0, "codeBase": 0,
			"codeType": 0, "color": 0, "compact": boolean, "declare": boolean, "event": 0,
			"face": 0, "frame": 0, "frameBorder": 0, "hSpace": number,
			"leftMargin": number, "link": 0, "longDesc": 0, "lowSrc": 0,
			"marginHeight": number, "marginWidth": number, "noResize": boolean,
			"noHref": boolean, "noShade": boolean, "noWrap": boolean, "object": 0,
			"profile": 0, "prompt": 0, "rev": 0, "rightMargin": number, "rules": 0,
			"scheme": 0, "scrolling": booleanish, "standby": 0, "summary": 0, "text": 0,
			"topMargin": number, "valueType": 0, "version": 0, "vAlign": 0, "vLink": 0,
			"vSpace": number,
			// non-standard
			"allowTransparency": 0, "autoCorrect": 0, "autoSave": 0,
			"disablePictureInPicture": boolean, "disableRemotePlayback": boolean,
			"prefix": 0, "property": 0, "results": number, "security": 0,
			"unselectable": 0,
		},
	}
}

// svgKebab lists SVG properties whose attribute is the property in kebab case.
var svgKebab = []string{
	"accentHeight", "alignmentBaseline", "arabicForm", "baselineShift", "capHeight",
	"clipPath", "clipRule", "colorInterpolation", "colorInterpolationFilters",
	"colorProfile", "colorRendering", "dominantBaseline", "enableBackground",
	"fillOpacity", "fillRule", "floodColor", "floodOpacity", "fontFamily", "fontSize",
	"fontSizeAdjust", "fontStretch", "fontStyle", "fontVariant", "fontWeight",
	"glyphName", "glyphOrientationHorizontal", "glyphOrientationVertical",
	"horizAdvX", "horizOriginX", "horizOriginY", "imageRendering", "letterSpacing",
	"lightingColor", "markerEnd", "markerMid", "markerStart", "overlinePosition",
	"overlineThickness", "paintOrder", "pointerEvents", "renderingIntent",
	"shapeRendering", "stopColor", "stopOpacity", "strikethroughPosition",
	"strikethroughThickness", "strokeOpacity", "strokeWidth", "textAnchor",
	"textDecoration", "textRendering", "transformOrigin", "underlinePosition",
	"underlineThickness", "unicodeBidi", "unicodeRange", "unitsPerEm", "vAlphabetic",
	"vHanging", "vIdeographic", "vMathematical", "vectorEffect", "vertAdvY",
	"vertOriginX", "vertOriginY", "wordSpacing", "writingMode", "xHeight",
}

func svgSpace() space {
	attributes := map[string]string{
		"className":        "class",
		"crossOrigin":      "crossorigin",
		"dataType":         "datatype",
		"hrefLang":         "hreflang",
		"panose1":          "panose-1",
		"playbackOrder":    "playbackorder",
		"referrerPolicy":   "referrerpolicy",
		"strokeDashArray":  "stroke-dasharray",
		"strokeDashOffset": "stroke-dashoffset",
		"strokeLineCap":    "stroke-linecap",
		"strokeLineJoin":   "stroke-linejoin",
		"strokeMiterLimit": "stroke-miterlimit",
		"tabIndex":         "tabindex",
		"timelineBegin":    "timelinebegin",
		"typeOf":           "typeof",
	}
	properties := map[string]mask{
		"about": commaOrSpaceSeparated, "className": spaceSeparated, "crossOrigin": 0,
		"cx": 0, "cy": 0, "d": 0, "dataType": 0, "download": boolean, "dx": 0, "dy": 0,
		"fill": 0, "filter": 0, "fr": 0, "fx": 0, "fy": 0, "gradientTransform": 0,
		"gradientUnits": 0, "height": 0, "href": 0, "hrefLang": 0, "id": 0, "in": 0,
		"in2": 0, "lang": 0, "markerHeight": 0, "markerWidth": 0, "mask": 0,
		"offset": 0, "opacity": 0, "orient": 0, "panose1": 0, "path": 0,
		"pathLength": number, "patternUnits": 0, "playbackOrder": 0,
		"points": 0, "preserveAspectRatio": 0, "r": 0, "referrerPolicy": 0,
		"rel": commaOrSpaceSeparated, "role": 0, "rotate": 0, "rx": 0, "ry": 0,
		"stroke": 0, "strokeDashArray": commaOrSpaceSeparated, "strokeDashOffset": 0,
		"strokeLineCap": 0, "strokeLineJoin": 0, "strokeMiterLimit": number,
		"style": 0, "tabIndex": 0, "target": 0, "textLength": 0,
		"timelineBegin": 0, "title": 0, "transform": 0, "type": 0, "typeOf": commaOrSpaceSeparated,
		"version": 0, "viewBox": 0, "visibility": 0, "width": 0, "x": 0, "x1": 0,
		"x2": 0, "y": 0, "y1": 0, "y2": 0, "z": 0, "zoomAndPan": 0,
	}
	for _, p := range svgKebab {
		properties[p] = 0
		attributes[p] = camelToDash(p)
	}
	properties["strokeOpacity"] = number
	properties["fillOpacity"] = number
	properties["floodOpacity"] = number
	return space{
		name:       SpaceSVG,
		properties: properties,
		attributes: attributes,
		transform:  caseSensitiveTransform,
	}
}
