package api

import (
	"context"

	"studyhall/internal/core/forum"
	"studyhall/internal/platform/logger"

	"studyhall/internal/modkit/hookkit"

	anondomain "studyhall/internal/services/anonymity/domain"
	endorsedomain "studyhall/internal/services/endorsement/domain"
	resolutiondomain "studyhall/internal/services/resolution/domain"
)

// Content pipeline hook names. The forum front-end invokes these around
// its own create and fetch paths; each filter only adds or rewrites
// overlay fields on the payload
const (
	HookTopicCreate = "topic.create"
	HookPostCreate  = "post.create"
	HookTopicGet    = "topic.get"
	HookTopicsGet   = "topics.get"
	HookPostsGet    = "posts.get"
	HookPostsSum    = "posts.summary"
	HookPostTools   = "post.tools"
)

func attachHooks(
	log logger.Logger,
	state resolutiondomain.StatePort,
	endorse endorsedomain.ManagerPort,
	anon anondomain.FilterPort,
) *hookkit.Registry {
	reg := hookkit.NewRegistry()

	hookkit.Attach(reg, HookTopicCreate, hookkit.Soft(log, HookTopicCreate, state.SetDefault))
	hookkit.Attach(reg, HookTopicCreate, hookkit.Soft(log, HookTopicCreate, anon.MarkTopic))

	hookkit.Attach(reg, HookPostCreate, hookkit.Soft(log, HookPostCreate, anon.MarkPost))
	hookkit.Attach(reg, HookPostCreate, hookkit.Soft(log, HookPostCreate, endorse.AutoEndorse))
	hookkit.Attach(reg, HookPostCreate, hookkit.Soft(log, HookPostCreate, autoUnresolve(state)))

	hookkit.Attach(reg, HookTopicGet, hookkit.Soft(log, HookTopicGet, annotateOne(state)))
	hookkit.Attach(reg, HookTopicGet, hookkit.Soft(log, HookTopicGet, anon.ObfuscateTopic))

	hookkit.Attach(reg, HookTopicsGet, hookkit.Soft(log, HookTopicsGet, state.AnnotateAndSort))
	hookkit.Attach(reg, HookTopicsGet, hookkit.Soft(log, HookTopicsGet, anon.ObfuscateTopics))

	hookkit.Attach(reg, HookPostsGet, hookkit.Soft(log, HookPostsGet, endorse.Normalize))
	hookkit.Attach(reg, HookPostsGet, hookkit.Soft(log, HookPostsGet, anon.ObfuscatePosts))

	hookkit.Attach(reg, HookPostsSum, hookkit.Soft(log, HookPostsSum, anon.ObfuscateSummaries))

	hookkit.Attach(reg, HookPostTools, hookkit.Soft(log, HookPostTools, endorse.MenuActions))

	return reg
}

// autoUnresolve adapts the reply hook onto the create payload
func autoUnresolve(state resolutiondomain.StatePort) hookkit.Filter[forum.PostCreate] {
	return func(ctx context.Context, pc forum.PostCreate) (forum.PostCreate, error) {
		if err := state.OnReply(ctx, pc.Post); err != nil {
			return pc, err
		}
		return pc, nil
	}
}

// annotateOne runs the batch annotation over a single topic view
func annotateOne(state resolutiondomain.StatePort) hookkit.Filter[forum.TopicView] {
	return func(ctx context.Context, view forum.TopicView) (forum.TopicView, error) {
		list, err := state.AnnotateAndSort(ctx, forum.TopicListView{
			ViewerUID: view.ViewerUID,
			Topics:    []forum.Topic{view.Topic},
		})
		if err != nil {
			return view, err
		}
		if len(list.Topics) == 1 {
			view.Topic = list.Topics[0]
		}
		return view, nil
	}
}
