package redis

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Key patterns, all under {ns}:
//
//	{ns}:topics                       SET of topic ids
//	{ns}:thread:{topic}               ZSET of versions, score = version
//	{ns}:version:{topic}:{version}    HASH TopicVersion
//	{ns}:head:{topic}                 HASH TopicHead
//	{ns}:children:{parent}            SET of live child ids
//	{ns}:resource:{id}                HASH Resource
//	{ns}:topic_resources:{topic}      SET of resource ids
//	{ns}:users                        SET of user ids
//	{ns}:user:{id}                    HASH User
//	{ns}:user_email:{email}           STRING owning user id

func (c *Client) topicsKey() string {
	return c.ns + ":topics"
}

func (c *Client) threadKey(topicID uuid.UUID) string {
	return fmt.Sprintf("%s:thread:%s", c.ns, topicID)
}

func (c *Client) versionKey(topicID uuid.UUID, version int) string {
	return fmt.Sprintf("%s:version:%s:%d", c.ns, topicID, version)
}

func (c *Client) headKey(topicID uuid.UUID) string {
	return fmt.Sprintf("%s:head:%s", c.ns, topicID)
}

func (c *Client) childrenKey(parentID uuid.UUID) string {
	return fmt.Sprintf("%s:children:%s", c.ns, parentID)
}

func (c *Client) resourceKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:resource:%s", c.ns, id)
}

func (c *Client) topicResourcesKey(topicID uuid.UUID) string {
	return fmt.Sprintf("%s:topic_resources:%s", c.ns, topicID)
}

func (c *Client) usersKey() string {
	return c.ns + ":users"
}

func (c *Client) userKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s", c.ns, id)
}

func (c *Client) userEmailKey(email string) string {
	return fmt.Sprintf("%s:user_email:%s", c.ns, strings.ToLower(email))
}
