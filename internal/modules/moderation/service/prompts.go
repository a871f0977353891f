package moderation

import "fmt"

const classifyInstruction = "Hello. I'll give you the content of the %s (can be in any language). " +
	"You must return me only True if anywhere there is obscene language or insults, etc. " +
	"If this is not the case, just return False. "

func classifyPrompt(s Subject) string {
	head := fmt.Sprintf(classifyInstruction, s.Kind)
	switch s.Kind {
	case KindPost:
		return head + fmt.Sprintf("Post title: %s Post content: %s", s.Title, s.Content)
	case KindComment:
		return head + fmt.Sprintf("Comment content: %s", s.Content)
	default:
		return head + fmt.Sprintf("Reply content: %s", s.Content)
	}
}

func replyPrompt(postTitle, postContent, commentContent string) string {
	return fmt.Sprintf(
		"Hello. I'll give you the title and content of a post and a comment left under it. "+
			"Write only the text of a reply to the comment on behalf of the creator of the post. "+
			"The reply must be in the same language as the comment. "+
			"Post title: %s Post content: %s Comment content: %s",
		postTitle, postContent, commentContent,
	)
}
