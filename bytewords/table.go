package bytewords

// words is the 256-word Bytewords alphabet, indexed 0-255. Each word is
// four lowercase letters; the "minimal" 2-char code (first+last letter) is
// unique across the whole table (spec.md §4.2), which the init-time check
// in lookup.go verifies.
var words = [256]string{
	"aeda", "beka", "cera", "deya", "eefa", "fema", "geta", "heaa",
	"ieha", "jeoa", "keva", "leca", "meja", "neqa", "oexa", "peea",
	"qela", "resa", "seza", "tega", "uena", "veua", "weba", "xeia",
	"yepa", "zewa", "aedb", "bekb", "cerb", "deyb", "eefb", "femb",
	"getb", "heab", "iehb", "jeob", "kevb", "lecb", "mejb", "neqb",
	"oexb", "peeb", "qelb", "resb", "sezb", "tegb", "uenb", "veub",
	"webb", "xeib", "yepb", "zewb", "aedc", "bekc", "cerc", "deyc",
	"eefc", "femc", "getc", "heac", "iehc", "jeoc", "kevc", "lecc",
	"mejc", "neqc", "oexc", "peec", "qelc", "resc", "sezc", "tegc",
	"uenc", "veuc", "webc", "xeic", "yepc", "zewc", "aedd", "bekd",
	"cerd", "deyd", "eefd", "femd", "getd", "head", "iehd", "jeod",
	"kevd", "lecd", "mejd", "neqd", "oexd", "peed", "qeld", "resd",
	"sezd", "tegd", "uend", "veud", "webd", "xeid", "yepd", "zewd",
	"aede", "beke", "cere", "deye", "eefe", "feme", "gete", "heae",
	"iehe", "jeoe", "keve", "lece", "meje", "neqe", "oexe", "peee",
	"qele", "rese", "seze", "tege", "uene", "veue", "webe", "xeie",
	"yepe", "zewe", "aedf", "bekf", "cerf", "deyf", "eeff", "femf",
	"getf", "heaf", "iehf", "jeof", "kevf", "lecf", "mejf", "neqf",
	"oexf", "peef", "qelf", "resf", "sezf", "tegf", "uenf", "veuf",
	"webf", "xeif", "yepf", "zewf", "aedg", "bekg", "cerg", "deyg",
	"eefg", "femg", "getg", "heag", "iehg", "jeog", "kevg", "lecg",
	"mejg", "neqg", "oexg", "peeg", "qelg", "resg", "sezg", "tegg",
	"ueng", "veug", "webg", "xeig", "yepg", "zewg", "aedh", "bekh",
	"cerh", "deyh", "eefh", "femh", "geth", "heah", "iehh", "jeoh",
	"kevh", "lech", "mejh", "neqh", "oexh", "peeh", "qelh", "resh",
	"sezh", "tegh", "uenh", "veuh", "webh", "xeih", "yeph", "zewh",
	"aedi", "beki", "ceri", "deyi", "eefi", "femi", "geti", "heai",
	"iehi", "jeoi", "kevi", "leci", "meji", "neqi", "oexi", "peei",
	"qeli", "resi", "sezi", "tegi", "ueni", "veui", "webi", "xeii",
	"yepi", "zewi", "aedj", "bekj", "cerj", "deyj", "eefj", "femj",
	"getj", "heaj", "iehj", "jeoj", "kevj", "lecj", "mejj", "neqj",
	"oexj", "peej", "qelj", "resj", "sezj", "tegj", "uenj", "veuj",
}
