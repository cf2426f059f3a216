package wikitext

// Extension tags whose body is itself wikitext.
var parsableTagNames = []string{
	"categorytree", "gallery", "imagemap", "includeonly", "indicator",
	"inputbox", "noinclude", "onlyinclude", "poem", "ref", "references",
	"section",
}

// Extension tags whose body is opaque.
var unparsableTagNames = []string{
	"ce", "charinsert", "chem", "graph", "hiero", "languages", "mapframe",
	"maplink", "math", "nowiki", "pagelist", "pagequality", "pages", "pre",
	"score", "source", "syntaxhighlight", "templatedata", "templatestyles",
	"timeline",
}

var bareExternalLinkSchemes = []string{
	"bitcoin:", "ftp://", "ftps://", "geo:", "git://", "gopher://", "http://",
	"https://", "irc://", "ircs://", "magnet:", "mailto:", "mms://", "news:",
	"nntp://", "redis://", "sftp://", "sip:", "sips:", "sms:", "ssh://",
	"svn://", "tel:", "telnet://", "urn:", "worldwind://", "xmpp:",
}

var htmlTagNames = []string{
	"s", "ins", "code", "b", "ol", "i", "h5", "th", "dt", "td", "wbr", "div",
	"big", "p", "small", "h4", "tt", "span", "font", "ruby", "h3", "dfn", "rb",
	"li", "h1", "cite", "dl", "rtc", "em", "q", "h2", "samp", "strike", "time",
	"blockquote", "bdi", "del", "br", "rp", "hr", "abbr", "sub", "u", "kbd",
	"table", "rt", "dd", "var", "ul", "tr", "center", "data", "strong", "mark",
	"h6", "bdo", "caption", "sup",
}

var parserFunctionNames = []string{
	"ARTICLEPAGENAME", "ARTICLEPAGENAMEE", "ARTICLESPACE", "ARTICLESPACEE",
	"BASEPAGENAME", "BASEPAGENAMEE", "CASCADINGSOURCES", "CONTENTLANG",
	"CONTENTLANGUAGE", "CURRENTDAY", "CURRENTDAY2", "CURRENTDAYNAME",
	"CURRENTDOW", "CURRENTHOUR", "CURRENTMONTH", "CURRENTMONTH1",
	"CURRENTMONTHABBREV", "CURRENTMONTHNAME", "CURRENTMONTHNAMEGEN",
	"CURRENTTIME", "CURRENTTIMESTAMP", "CURRENTVERSION", "CURRENTWEEK",
	"CURRENTYEAR", "DEFAULTCATEGORYSORT", "DEFAULTSORT", "DEFAULTSORTKEY",
	"DIRECTIONMARK", "DIRMARK", "DISPLAYTITLE", "FULLPAGENAME",
	"FULLPAGENAMEE", "LOCALDAY", "LOCALDAY2", "LOCALDAYNAME", "LOCALDOW",
	"LOCALHOUR", "LOCALMONTH", "LOCALMONTH1", "LOCALMONTHABBREV",
	"LOCALMONTHNAME", "LOCALMONTHNAMEGEN", "LOCALTIME", "LOCALTIMESTAMP",
	"LOCALWEEK", "LOCALYEAR", "NAMESPACE", "NAMESPACEE", "NAMESPACENUMBER",
	"NUMBERINGROUP", "NUMBEROFACTIVEUSERS", "NUMBEROFADMINS",
	"NUMBEROFARTICLES", "NUMBEROFEDITS", "NUMBEROFFILES", "NUMBEROFPAGES",
	"NUMBEROFUSERS", "NUMBEROFVIEWS", "NUMINGROUP", "PAGEID", "PAGELANGUAGE",
	"PAGENAME", "PAGENAMEE", "PAGESINCAT", "PAGESINCATEGORY",
	"PAGESINNAMESPACE", "PAGESINNS", "PAGESIZE", "PROTECTIONEXPIRY",
	"PROTECTIONLEVEL", "REVISIONDAY", "REVISIONDAY2", "REVISIONID",
	"REVISIONMONTH", "REVISIONMONTH1", "REVISIONTIMESTAMP", "REVISIONUSER",
	"REVISIONYEAR", "ROOTPAGENAME", "ROOTPAGENAMEE", "SCRIPTPATH", "SERVER",
	"SERVERNAME", "SITENAME", "STYLEPATH", "SUBJECTPAGENAME",
	"SUBJECTPAGENAMEE", "SUBJECTSPACE", "SUBJECTSPACEE", "SUBPAGENAME",
	"SUBPAGENAMEE", "TALKPAGENAME", "TALKPAGENAMEE", "TALKSPACE", "TALKSPACEE",
	"anchorencode", "canonicalurl", "filepath", "formatnum", "fullurl",
	"gender", "grammar", "int", "lc", "lcfirst", "localurl", "msg", "msgnw",
	"ns", "nse", "padleft", "padright", "plural", "raw", "safesubst", "subst",
	"uc", "ucfirst", "urlencode",
}
