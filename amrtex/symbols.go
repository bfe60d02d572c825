package amrtex

// Symbol tables hold numeric character references, resolved when serializing.

var greek = map[string]string{
	"alpha":      "&#x003B1;",
	"beta":       "&#x003B2;",
	"gamma":      "&#x003B3;",
	"delta":      "&#x003B4;",
	"epsilon":    "&#x003F5;",
	"varepsilon": "&#x003B5;",
	"zeta":       "&#x003B6;",
	"eta":        "&#x003B7;",
	"theta":      "&#x003B8;",
	"vartheta":   "&#x003D1;",
	"iota":       "&#x003B9;",
	"kappa":      "&#x003BA;",
	"lambda":     "&#x003BB;",
	"mu":         "&#x003BC;",
	"nu":         "&#x003BD;",
	"xi":         "&#x003BE;",
	"pi":         "&#x003C0;",
	"rho":        "&#x003C1;",
	"sigma":      "&#x003C3;",
	"tau":        "&#x003C4;",
	"upsilon":    "&#x003C5;",
	"phi":        "&#x003D5;",
	"varphi":     "&#x003C6;",
	"chi":        "&#x003C7;",
	"psi":        "&#x003C8;",
	"omega":      "&#x003C9;",
	"Gamma":      "&#x00393;",
	"Delta":      "&#x00394;",
	"Theta":      "&#x00398;",
	"Lambda":     "&#x0039B;",
	"Xi":         "&#x0039E;",
	"Pi":         "&#x003A0;",
	"Sigma":      "&#x003A3;",
	"Upsilon":    "&#x003A5;",
	"Phi":        "&#x003A6;",
	"Psi":        "&#x003A8;",
	"Omega":      "&#x003A9;",
}

// identifiers are commands rendered as <mi>.
var identifiers = map[string]string{
	"partial": "&#x02202;",
	"infty":   "&#x0221E;",
	"nabla":   "&#x02207;",
	"ell":     "&#x02113;",
}

// operators are commands rendered as <mo>.
var operators = map[string]string{
	"cdot":   "&#x022C5;",
	"times":  "&#x000D7;",
	"div":    "&#x000F7;",
	"pm":     "&#x000B1;",
	"mp":     "&#x02213;",
	"leq":    "&#x02264;",
	"le":     "&#x02264;",
	"geq":    "&#x02265;",
	"ge":     "&#x02265;",
	"neq":    "&#x02260;",
	"ne":     "&#x02260;",
	"approx": "&#x02248;",
	"equiv":  "&#x02261;",
	"propto": "&#x0221D;",
	"sum":    "&#x02211;",
	"prod":   "&#x0220F;",
	"int":    "&#x0222B;",
	"to":     "&#x02192;",
	"{":      "&#x0007B;",
	"}":      "&#x0007D;",
	"%":      "&#x00025;",
}

// functions are upright multi-letter identifiers.
var functions = map[string]bool{
	"exp": true,
	"log": true,
	"ln":  true,
	"sin": true,
	"cos": true,
	"tan": true,
	"max": true,
	"min": true,
}

// spaces maps spacing commands to mspace widths.
var spaces = map[string]string{
	",":       "0.167em",
	":":       "0.222em",
	">":       "0.222em",
	";":       "0.278em",
	"!":       "negativethinmathspace",
	"quad":    "1em",
	"qquad":   "2em",
	" ":       "0.333em",
	"enspace": "0.5em",
}

// chars maps single operator characters to <mo> contents.
var chars = map[rune]string{
	'+':  "&#x0002B;",
	'-':  "&#x02212;",
	'=':  "&#x0003D;",
	'(':  "&#x00028;",
	')':  "&#x00029;",
	'[':  "&#x0005B;",
	']':  "&#x0005D;",
	',':  "&#x0002C;",
	'/':  "&#x0002F;",
	'<':  "&#x0003C;",
	'>':  "&#x0003E;",
	'|':  "&#x0007C;",
	'!':  "&#x00021;",
	':':  "&#x0003A;",
	';':  "&#x0003B;",
	'*':  "&#x0002A;",
	'.':  "&#x0002E;",
	'\'': "&#x02032;",
}

// delimiters are the arguments accepted by \left and \right.
var delimiters = map[string]string{
	"(":   "&#x00028;",
	")":   "&#x00029;",
	"[":   "&#x0005B;",
	"]":   "&#x0005D;",
	"|":   "&#x0007C;",
	"\\{": "&#x0007B;",
	"\\}": "&#x0007D;",
	".":   "",
}
