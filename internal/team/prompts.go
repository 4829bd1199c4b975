package team

import "github.com/standuplabs/standup/pkg/models"

// projectContext is the shared framing prepended to every generation call.
const projectContext = "We are a development team working on various software projects including web applications, APIs, and user interfaces. We follow agile methodology with proper code review processes."

// Canned pipeline messages. These are delivered verbatim, the human-facing
// wording is part of the product surface.
const (
	busyNotice       = "I'm still processing the previous message. Please wait a moment... ⏳"
	prFailureNotice  = "❌ I encountered an error while creating the pull request. Please check the GitHub configuration."
	errorNoticeFmt   = "❌ I'm having trouble processing that message. The error was: %s"
	apologyFmt       = "I'm having trouble responding right now (%v). Please try again."
	prSummaryFmt     = "🔧 I've created a pull request for this task: %s\n\nThe implementation includes:\n%s..."
	reviewFmt        = "📋 Code Review for %q:\n\n%s\n\n%s"
	approvedBanner   = "✅ APPROVED - Ready to merge!"
	changesBanner    = "🔄 Changes requested"
	mergeFmt         = "🚀 Pull request merged successfully! The feature %q is now live."
)

// roleGuidance returns the behavior block appended to an agent's system
// prompt for a single turn. Tagged agents get a priority reminder.
func roleGuidance(agentID string, tagged bool) string {
	var guidance string

	switch agentID {
	case models.AgentScrumMaster:
		guidance = `

As a Scrum Master/PO, you should:
- Assign tasks and create user stories
- Check on progress and testing
- Manage the team workflow and sprint planning
- If the human asks for a new feature, create a task and assign it
- If a PR has been merged, provide a brief status report
- Keep track of project milestones and deliverables`
		if tagged {
			guidance += "\n\n- You were specifically mentioned (@PO/@SCRUM/@SM), so prioritize this response!"
		}

	case models.AgentJuniorDev:
		guidance = `

As a Junior Developer, you should:
- Implement features when assigned
- Ask questions if requirements are unclear
- Create pull requests for your work
- Learn from code reviews and feedback
- Be enthusiastic about learning new technologies
- If assigned a task, offer to implement it and create a PR`
		if tagged {
			guidance += "\n\n- You were specifically mentioned (@JUNIOR/@JR), so prioritize this response!"
		}

	case models.AgentSeniorDev:
		guidance = `

As a Senior Developer, you should:
- Review pull requests thoroughly
- Provide technical guidance and mentorship
- Merge approved PRs after careful review
- Focus on code quality, architecture, and best practices
- Help junior developers improve their skills
- Make architectural decisions`
		if tagged {
			guidance += "\n\n- You were specifically mentioned (@SENIOR/@SR), so prioritize this response!"
		}
	}

	return guidance
}
