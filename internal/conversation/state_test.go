package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riccoai/lead-agent/internal/session"
)

func TestShouldOfferConsultationRequiresWarmup(t *testing.T) {
	state := session.State{
		InteractionCount: 2,
		LastTopic:        session.TopicBusinessInquiry,
	}

	assert.False(t, ShouldOfferConsultation("we need help with our processes", state))
}

func TestShouldOfferConsultationOnEngagedTopics(t *testing.T) {
	for _, topic := range []session.Topic{
		session.TopicBusinessInquiry,
		session.TopicServiceInterest,
		session.TopicImplementation,
	} {
		state := session.State{InteractionCount: 3, LastTopic: topic}
		assert.True(t, ShouldOfferConsultation("anything at all", state), "topic %s", topic)
	}
}

func TestShouldOfferConsultationNeedsTriggerForServiceTopics(t *testing.T) {
	state := session.State{InteractionCount: 5, LastTopic: session.TopicAnalytics}

	assert.False(t, ShouldOfferConsultation("what dashboards do you build?", state))
	assert.True(t, ShouldOfferConsultation("can you help with our reporting?", state))
}

func TestShouldOfferConsultationNeverFiresWithoutTopic(t *testing.T) {
	state := session.State{InteractionCount: 10, LastTopic: session.TopicNone}

	assert.False(t, ShouldOfferConsultation("can you help with our reporting?", state))
}

func TestServicesExplained(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleUser, Content: "Hello"},
		{Role: session.RoleAssistant, Content: greetingReply},
	}
	assert.False(t, ServicesExplained(turns))

	turns = append(turns, session.Turn{Role: session.RoleAssistant, Content: servicesReply})
	assert.True(t, ServicesExplained(turns))
}

func TestTopicNudgeMapping(t *testing.T) {
	assert.Equal(t, analyticsNudge, topicNudge(session.TopicAnalytics))
	assert.Equal(t, strategyNudge, topicNudge(session.TopicStrategy))
	assert.Equal(t, automationNudge, topicNudge(session.TopicAutomation))
	assert.Equal(t, defaultNudge, topicNudge(session.TopicNone))
	assert.Equal(t, defaultNudge, topicNudge(session.TopicBusinessInquiry))
}
