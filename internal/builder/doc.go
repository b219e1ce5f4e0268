/*
Package builder turns one configuration node into one component instance.

Given a component descriptor, a node and a build context, Build produces the
instance without any per-type construction code in the caller. The work is a
fixed sequence:

 1. Entry-point resolution: the descriptor's construction strategies were
    resolved once at registration time. The builder path is optional; a
    missing factory is a hard failure for the factory path.

 2. Builder path: the builder factory is invoked once, every input the
    returned builder declares is bound through the conversion handlers, the
    consumption check runs and the builder's Build finalizes the instance.

 3. Factory path: tried when the builder path is missing or failed. Its
    positional arguments are bound the same way, the consumption check runs
    and the factory function is invoked.

Every attempt owns a fresh consumption tracker, so what one path claimed does
not leak into the other. Only the consumption diagnostics of the last attempt
are reported.

Nothing escapes Build: binding errors, errors returned by component code and
panics raised by it are all converted into diagnostics on the Result. The
caller decides whether the accumulated diagnostics should abort a load.
*/
package builder
