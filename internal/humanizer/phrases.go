package humanizer

// replacement maps a phrase to the text that replaces it.
// Slices of replacements keep the substitution order stable.
type replacement struct {
	from string
	to   string
}

var personalTouches = []string{
	"In my experience,",
	"I've found that",
	"From what I've seen,",
	"Based on my observations,",
	"I've noticed that",
	"In my opinion,",
	"I believe",
	"I think",
	"It seems to me that",
	"I've learned that",
}

var personalExperiences = []string{
	"I remember when I first",
	"A few years ago, I",
	"I used to struggle with",
	"When I started out,",
	"I've been doing this for years, and",
	"Back in the day,",
	"I once had a client who",
	"I'll never forget when",
	"One time, I",
	"I've made this mistake before:",
}

var contractions = []replacement{
	{"do not", "don't"},
	{"does not", "doesn't"},
	{"did not", "didn't"},
	{"will not", "won't"},
	{"would not", "wouldn't"},
	{"could not", "couldn't"},
	{"should not", "shouldn't"},
	{"cannot", "can't"},
	{"is not", "isn't"},
	{"are not", "aren't"},
	{"was not", "wasn't"},
	{"were not", "weren't"},
	{"have not", "haven't"},
	{"has not", "hasn't"},
	{"had not", "hadn't"},
	{"I am", "I'm"},
	{"you are", "you're"},
	{"he is", "he's"},
	{"she is", "she's"},
	{"it is", "it's"},
	{"we are", "we're"},
	{"they are", "they're"},
	{"I have", "I've"},
	{"you have", "you've"},
	{"we have", "we've"},
	{"they have", "they've"},
	{"I will", "I'll"},
	{"you will", "you'll"},
	{"he will", "he'll"},
	{"she will", "she'll"},
	{"we will", "we'll"},
	{"they will", "they'll"},
}

var fillerWords = []string{
	"actually",
	"basically",
	"honestly",
	"literally",
	"obviously",
	"seriously",
	"definitely",
	"probably",
	"maybe",
	"perhaps",
	"sort of",
	"kind of",
	"you know",
	"I mean",
	"like",
	"well",
	"so",
	"anyway",
	"by the way",
}

var emotions = []string{
	"I'm excited about",
	"I love how",
	"I'm passionate about",
	"It's frustrating when",
	"I'm amazed by",
	"I'm curious about",
	"I'm worried that",
	"I'm confident that",
	"I'm surprised by",
	"I'm grateful for",
}

var casualReplacements = []replacement{
	{"utilize", "use"},
	{"commence", "start"},
	{"terminate", "end"},
	{"facilitate", "help"},
	{"demonstrate", "show"},
	{"implement", "do"},
	{"optimize", "improve"},
	{"prioritize", "focus on"},
	{"strategize", "plan"},
	{"conceptualize", "think about"},
	{"furthermore", "also"},
	{"therefore", "so"},
	{"however", "but"},
	{"nevertheless", "still"},
	{"consequently", "as a result"},
	{"subsequently", "then"},
	{"additionally", "plus"},
	{"alternatively", "or"},
	{"specifically", "exactly"},
	{"particularly", "especially"},
}

// informalSpellings replaces the formal spelling (from) with its informal form (to).
// The alright entry is an identity rewrite kept so the per-pair draw count stays at ten.
var informalSpellings = []replacement{
	{"alright", "alright"},
	{"going to", "gonna"},
	{"want to", "wanna"},
	{"got to", "gotta"},
	{"kind of", "kinda"},
	{"sort of", "sorta"},
	{"don't know", "dunno"},
	{"yes", "yeah"},
	{"no", "nope"},
	{"yes", "yep"},
}
