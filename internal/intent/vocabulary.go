package intent

import "github.com/riccoai/lead-agent/internal/session"

// Fixed vocabularies. These double as the fallback when model-backed checks
// are unavailable, so changes here shift routing behavior directly.

var greetings = []string{
	"hi", "hello", "hey",
	"good morning", "good afternoon", "good evening",
}

var affirmations = []string{
	"yes", "yeah", "yah", "yep", "sure", "ok", "okay", "please",
	"absolutely", "let's do it", "lets do it", "interested", "definitely",
	"i would", "sounds good", "that works", "good idea", "why not",
	"go ahead", "perfect", "great",
}

var schedulingWords = []string{
	"book", "schedule", "consultation", "meet", "appointment",
	"discuss", "talk to someone", "talk with someone", "call",
}

var bookingConfirmations = []string{
	"booked", "scheduled", "made an appointment", "book it",
}

var implementationTriggers = []string{
	"how can i", "how do i", "implement", "integrate", "setup",
	"configure", "install", "start", "begin with",
}

// consultationInvites are phrases an assistant reply uses when offering a
// meeting; an affirmative follow-up accepts the offer.
var consultationInvites = []string{
	"consultation", "discuss", "explore", "interested", "meeting",
	"would you be interested", "schedule", "book", "talk more",
}

// offTopicWords is the narrow deny-list for the relevance filter. Anything
// not matching stays relevant; the bias toward inclusion is deliberate.
var offTopicWords = []string{
	"dating", "girlfriend", "boyfriend", "relationship advice",
	"medical advice", "diagnosis", "symptoms",
	"gambling", "betting", "casino",
	"movie", "tv show", "netflix",
	"weather", "forecast",
	"restaurant", "recipe", "food recommendation",
	"travel", "vacation", "tourism",
	"sports", "football", "basketball",
	"shopping advice",
}

var topicKeywords = map[string]session.Topic{
	"strategy":       session.TopicStrategy,
	"analytics":      session.TopicAnalytics,
	"data analysis":  session.TopicAnalytics,
	"automation":     session.TopicAutomation,
	"automate":       session.TopicAutomation,
	"implementation": session.TopicImplementation,
	"chatbot":        session.TopicServiceInterest,
}

var businessInquiryWords = []string{
	"my business", "our company", "we need", "looking for",
}

var serviceInterestWords = []string{
	"interested in", "want to know more", "your services",
}

const greetingCheckPrompt = `Determine if the given message is primarily a greeting/introduction or a direct question/request.

Examples of greetings:
- Hi, hello, hey
- Good morning/afternoon/evening
- Hi there, how are you
- Hello AI

Respond with a single character:
Y - if it's primarily a greeting
N - if it's a direct question/request`

const acknowledgmentCheckPrompt = `Determine if the given message is an acknowledgment or affirmative response.

Examples of acknowledgments include (but are not limited to):
- Simple acknowledgments (ok, thanks, sure)
- Affirmative responses (yes, yeah, let's do it)
- Polite agreements (that would be great, sounds good)
- Enthusiastic acceptances (oh yes please, absolutely)
- Context-dependent responses that indicate agreement

Respond with a single character:
Y - if the message is an acknowledgment/affirmative
N - if it's not an acknowledgment`

const relevanceCheckPrompt = `You are an AI relevance filter for an AI consultancy business.

ALWAYS answer Y for:
- ANY acknowledgments, follow-up responses, greetings, or small talk
- ANY business-related questions (processes, tools, data, automation,
  marketing, finance, legal, compliance, research, planning, training)
- ANY question that could POSSIBLY lead to a business discussion
- Questions showing general curiosity about capabilities or how things work

Answer N ONLY for clearly unrelated personal topics:
- Gambling/betting questions
- Personal medical advice
- Personal dating/relationship advice
- Restaurant/food, travel/tourism, entertainment/movies/TV
- Sports, weather, personal shopping recommendations

IMPORTANT: when in doubt, ALWAYS answer Y. The goal is to maintain
conversation flow and find business opportunities; err on the side of
inclusion rather than exclusion.

Respond with single character: Y/N`
