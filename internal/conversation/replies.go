package conversation

// Canned replies. These are part of the user-visible contract: routing tests
// assert on them, and collaborator failures must land on one of these rather
// than an error string.
const (
	capacityReply = "I apologize, but you've reached the maximum number of messages for this session. Please schedule a consultation to discuss your needs in detail."

	greetingReply = "Hello! What would you like to know about our AI solutions for businesses?"

	aboutSiteReply = "ricco.AI helps businesses implement AI solutions for growth and efficiency. Which area interests you: Strategy, Analytics, or Automation?"

	servicesReply = "We offer: AI Strategy, Data Analytics, Process Automation, and Chatbot Development. Which area interests you most?"

	servicesBeforeConsultationReply = "I'd be happy to discuss a consultation, but first let me explain our services. What specific areas of AI interest you?"

	implementationReply = "I'd be happy to discuss implementation details. Would you like to schedule a consultation to explore this further?"

	offTopicReply = "I specialize in AI solutions for businesses. What challenges is your business facing?"

	alreadyBookedReply = "I see you've already booked a consultation! Our team will be in touch soon. Is there anything else you'd like to know about our services?"

	bookingConfirmedReply = "Excellent! We look forward to speaking with you. In the meantime, feel free to ask any other questions you might have."

	apologyReply = "I apologize, but I'm having trouble processing your message. Please try again."
)

// Acknowledgment nudges keyed by the visitor's last topic.
const (
	analyticsNudge  = "Would you like to discuss how our data analytics solutions can improve your decision-making process?"
	strategyNudge   = "Would you like to explore how an AI strategy could benefit your business?"
	automationNudge = "Would you like to discuss which processes in your business we could help automate?"
	defaultNudge    = "Could you tell me more about your specific business needs?"
)

// Informational intent vocabularies, matched before retrieval kicks in.
var aboutSitePhrases = []string{
	"about this site", "about your site", "what is this site",
	"about your company", "tell me about",
}

var servicesPhrases = []string{
	"what services", "kind of services", "which services",
}
